package dto

type MediaUploadResponse struct {
	AssetID  string `json:"asset_id"`
	Kind     string `json:"kind"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

type MediaAssetResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}
