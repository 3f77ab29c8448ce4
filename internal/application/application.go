package application

const (
	// AppName is the application name used for directories and identification
	AppName = "gitodo"

	// AppOrigin is the web origin used when building shareable configuration links
	AppOrigin = "https://app.gitodo.dev"
)
