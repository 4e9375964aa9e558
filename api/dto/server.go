package dto

// ServerAddress is the connection info advertised to clients so a
// single endpoint hands them the whole deployment.
type ServerAddress struct {
	IDServer    string `json:"id_server"`
	RelayServer string `json:"relay_server"`
	APIServer   string `json:"api_server"`
	Pubkey      string `json:"pubkey"`
}

// DownloadInfo is one entry of the client download listing.
type DownloadInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type DownloadList struct {
	Links []DownloadInfo `json:"links"`
}
