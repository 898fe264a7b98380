package nftitem

type Attribute struct {
	TraitType   string `json:"trait_type" bson:"trait_type"`
	Value       string `json:"value" bson:"value"`
	DisplayType string `json:"display_type,omitempty" bson:"display_type,omitempty"`
}

type Attributes = []Attribute

// MetadataMedia is the media descriptor some issuers attach alongside
// image and animation_url.
type MetadataMedia struct {
	Uri        string `json:"uri"`
	Dimensions string `json:"dimensions"`
	Size       string `json:"size"`
	MimeType   string `json:"mimeType"`
}

// Metadata is the normalized shape of a token's off-chain metadata document.
type Metadata struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	AnimationUrl string         `json:"animation_url"`
	ExternalUrl  string         `json:"external_url"`
	Category     string         `json:"category"`
	Attributes   Attributes     `json:"attributes"`
	Media        *MetadataMedia `json:"media"`
}

// MediaMime returns the issuer-declared mime type, empty when absent.
func (m *Metadata) MediaMime() string {
	if m.Media == nil {
		return ""
	}
	return m.Media.MimeType
}
