package speech

// Azure returns playback audio in this format. The player is configured
// to match.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters for TTS playback, matching DefaultAudioFormat.
const (
	PlaybackSampleRate = 24000
	ChannelCount       = 1
	BitDepth           = 16
)

// Audio parameters for microphone capture. The recognition endpoint
// expects 16 kHz 16-bit mono PCM.
const CaptureSampleRate = 16000
