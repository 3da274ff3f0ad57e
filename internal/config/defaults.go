package config

const (
	defaultDataDir          = "~/shortreel/data"
	defaultLogDir           = "~/.local/share/shortreel/logs"
	defaultFontName         = "Sans"
	defaultFPS              = 24
	defaultCrossfadeSeconds = 1.0
	defaultAspectWidth      = 9
	defaultAspectHeight     = 16
	defaultVideoCodec       = "libx264"
	defaultAudioCodec       = "aac"
	defaultPixelFormat      = "yuv420p"
	defaultPreset           = "medium"
	defaultFontSize         = 80
	defaultCaptionColor     = "yellow"
	defaultStrokeColor      = "black"
	defaultStrokeWidth      = 6
	defaultShadowOffset     = 5
	defaultCaptionPosition  = 0.75
	defaultMusicVolume      = 0.2
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			FontName: defaultFontName,
		},
		Render: Render{
			FPS:              defaultFPS,
			CrossfadeSeconds: defaultCrossfadeSeconds,
			AspectWidth:      defaultAspectWidth,
			AspectHeight:     defaultAspectHeight,
			VideoCodec:       defaultVideoCodec,
			AudioCodec:       defaultAudioCodec,
			PixelFormat:      defaultPixelFormat,
			Preset:           defaultPreset,
		},
		Subtitles: Subtitles{
			Enabled:          true,
			FontSize:         defaultFontSize,
			Color:            defaultCaptionColor,
			StrokeColor:      defaultStrokeColor,
			StrokeWidth:      defaultStrokeWidth,
			ShadowOffset:     defaultShadowOffset,
			VerticalPosition: defaultCaptionPosition,
		},
		Music: Music{
			Enabled:    true,
			Volume:     defaultMusicVolume,
			Extensions: []string{".mp3"},
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
