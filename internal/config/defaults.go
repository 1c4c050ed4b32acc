package config

const (
	defaultSourceDir     = "video_src"
	defaultOutputDir     = "result"
	defaultHistoryDB     = "~/.local/share/vidsub/history.db"
	defaultFFmpegBinary  = "ffmpeg"
	defaultWhisperBinary = "whisper"
	defaultWhisperModel  = "small"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// defaultExtensions lists recognized video filename suffixes.
var defaultExtensions = []string{".mp4", ".mov", ".avi", ".mkv"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			OutputDir: defaultOutputDir,
			HistoryDB: defaultHistoryDB,
		},
		Batch: Batch{
			Extensions: append([]string(nil), defaultExtensions...),
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Whisper: Whisper{
			Binary:             defaultWhisperBinary,
			Model:              defaultWhisperModel,
			SerializeInference: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
