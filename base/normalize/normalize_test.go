package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/niftyhouse/indexer/domain"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Bored Ape #1", want: "Bored Ape #1"},
		{name: "control characters collapse", in: "Foo\x00\x01Bar", want: "Foo Bar"},
		{name: "emoji collapse", in: "Punk \U0001f600\U0001f600 9", want: "Punk 9"},
		{name: "space runs collapse", in: "Foo   Bar", want: "Foo Bar"},
		{name: "leading garbage trimmed", in: "\x07\x07Token", want: "Token"},
		{name: "trailing garbage trimmed", in: "Token\n\n", want: "Token"},
		{name: "only garbage", in: "\x00\x00", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestClassifyMedia(t *testing.T) {
	tests := []struct {
		name         string
		mimeType     string
		mediaUrl     string
		animationUrl string
		want         domain.MediaType
	}{
		{name: "audio mime wins", mimeType: "audio/mpeg", mediaUrl: "x.png", want: domain.MediaTypeAudio},
		{name: "video mime wins", mimeType: "video/mp4", want: domain.MediaTypeVideo},
		{name: "image mime", mimeType: "image/gif", want: domain.MediaTypeImage},
		{name: "audio extension", mediaUrl: "https://cdn/a.mp3", want: domain.MediaTypeAudio},
		{name: "video extension", mediaUrl: "https://cdn/a.webm", want: domain.MediaTypeVideo},
		{name: "query string ignored", mediaUrl: "https://cdn/a.mp4?v=2", want: domain.MediaTypeVideo},
		{name: "unknown extension is image", mediaUrl: "https://cdn/a.png", want: domain.MediaTypeImage},
		{name: "animation fallback", animationUrl: "https://cdn/a", want: domain.MediaTypeVideo},
		{name: "default image", want: domain.MediaTypeImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyMedia(tt.mimeType, tt.mediaUrl, tt.animationUrl))
		})
	}
}

func TestExternalUrl(t *testing.T) {
	req := require.New(t)
	req.Equal(
		"https://opensea.io/assets/ethereum/0xabc/7",
		ExternalUrl(domain.ChainId(1), domain.Address("0xABC"), domain.TokenId("7")),
	)
	req.Equal(
		"https://opensea.io/assets/matic/0xabc/7",
		ExternalUrl(domain.ChainId(137), domain.Address("0xabc"), domain.TokenId("7")),
	)
	// unknown chains fall back to the mainnet slug
	req.Equal(
		"https://opensea.io/assets/ethereum/0xabc/7",
		ExternalUrl(domain.ChainId(31337), domain.Address("0xabc"), domain.TokenId("7")),
	)
}

func TestDetectMime(t *testing.T) {
	req := require.New(t)
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	req.Equal("image/png", DetectMime(png))
	req.Equal("text/plain; charset=utf-8", DetectMime([]byte("hello")))
}
