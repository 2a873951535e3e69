package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/vibematch/backend/internal/core/ports"
)

// MediaFetcher implements ports.MediaFetcher by downloading the best
// audio-only stream of a video.
type MediaFetcher struct {
	client youtube.Client
}

var _ ports.MediaFetcher = (*MediaFetcher)(nil)

// NewMediaFetcher constructs a MediaFetcher with a 120s transport
// timeout for large streams.
func NewMediaFetcher() *MediaFetcher {
	return &MediaFetcher{
		client: youtube.Client{
			HTTPClient: &http.Client{Timeout: 120 * time.Second},
		},
	}
}

// FetchAudio resolves the video, picks its highest-bitrate audio-only
// format and returns the stream bytes plus the container extension.
func (f *MediaFetcher) FetchAudio(ctx context.Context, mediaID string) ([]byte, string, error) {
	video, err := f.client.GetVideoContext(ctx, mediaID)
	if err != nil {
		return nil, "", fmt.Errorf("youtube: resolve video %s: %w", mediaID, err)
	}

	format := pickAudioFormat(video.Formats)
	if format == nil {
		return nil, "", fmt.Errorf("youtube: no audio format for video %s", mediaID)
	}

	stream, _, err := f.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, "", fmt.Errorf("youtube: open stream for %s: %w", mediaID, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, "", fmt.Errorf("youtube: read stream for %s: %w", mediaID, err)
	}
	return data, extensionForMime(format.MimeType), nil
}

func pickAudioFormat(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	withAudio := formats.WithAudioChannels()
	for i := range withAudio {
		format := &withAudio[i]
		if !strings.HasPrefix(format.MimeType, "audio/") {
			continue
		}
		if best == nil || format.Bitrate > best.Bitrate {
			best = format
		}
	}
	if best == nil && len(withAudio) > 0 {
		// Muxed stream as a last resort; still playable audio.
		best = &withAudio[0]
	}
	return best
}

func extensionForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "audio/mp4"):
		return "m4a"
	case strings.HasPrefix(mimeType, "audio/webm"):
		return "webm"
	case strings.HasPrefix(mimeType, "audio/ogg"):
		return "opus"
	case strings.HasPrefix(mimeType, "audio/mpeg"):
		return "mp3"
	default:
		return "m4a"
	}
}
