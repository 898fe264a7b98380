package normalize

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/niftyhouse/indexer/domain"
)

var chainSlug = map[domain.ChainId]string{
	1:   "ethereum",
	5:   "goerli",
	137: "matic",
}

var audioExtensions = map[string]struct{}{
	"mp3": {}, "wav": {}, "ogg": {}, "oga": {}, "flac": {}, "aac": {},
}

var videoExtensions = map[string]struct{}{
	"mp4": {}, "webm": {}, "mov": {}, "avi": {}, "mkv": {}, "m4v": {},
}

// SanitizeName reduces a display name to printable ascii. Runs of
// whitespace, control, or non-ascii characters collapse to a single space.
func SanitizeName(name string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range name {
		if r > 0x20 && r <= 0x7e {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			// spaces join the collapsible run so "a <emoji> b" yields one
			// separator, not two
			pendingSpace = true
		}
	}
	return b.String()
}

// ClassifyMedia picks the media type by mime prefix first, then by the
// extension of the media url, then by the presence of an animation url.
func ClassifyMedia(mimeType, mediaUrl, animationUrl string) domain.MediaType {
	if strings.HasPrefix(mimeType, "audio/") {
		return domain.MediaTypeAudio
	}
	if strings.HasPrefix(mimeType, "video/") {
		return domain.MediaTypeVideo
	}
	if strings.HasPrefix(mimeType, "image/") {
		return domain.MediaTypeImage
	}

	ext := urlExtension(mediaUrl)
	if _, ok := audioExtensions[ext]; ok {
		return domain.MediaTypeAudio
	}
	if _, ok := videoExtensions[ext]; ok {
		return domain.MediaTypeVideo
	}
	if len(ext) > 0 {
		return domain.MediaTypeImage
	}

	if len(animationUrl) > 0 {
		return domain.MediaTypeVideo
	}
	return domain.MediaTypeImage
}

// DetectMime sniffs the mime type of raw media bytes.
func DetectMime(data []byte) string {
	return mimetype.Detect(data).String()
}

// ExternalUrl synthesizes the public marketplace page of an externally
// indexed token.
func ExternalUrl(chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) string {
	slug, ok := chainSlug[chainId]
	if !ok {
		slug = "ethereum"
	}
	return fmt.Sprintf("https://opensea.io/assets/%s/%s/%s", slug, contract.ToLowerStr(), tokenId)
}

func urlExtension(rawUrl string) string {
	if i := strings.IndexAny(rawUrl, "?#"); i >= 0 {
		rawUrl = rawUrl[:i]
	}
	i := strings.LastIndex(rawUrl, ".")
	if i < 0 || i == len(rawUrl)-1 {
		return ""
	}
	ext := strings.ToLower(rawUrl[i+1:])
	if strings.Contains(ext, "/") {
		return ""
	}
	return ext
}
