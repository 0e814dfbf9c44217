package cfg

type Cfg struct {
	// Application configuration
	PagesDir       string
	AssetsDir      string
	Port           string
	BaseUrl        string
	APIAccessKey   string
	ReloadInterval int // seconds

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
