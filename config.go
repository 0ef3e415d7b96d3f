package samajcms

// Config holds all runtime settings, read from the environment. The presence
// of DatabasePath selects the SQLite backend; when it is empty the server
// runs on the seeded in-memory store.
type Config struct {
	Addr          string `env:"HTTP_ADDR" envDefault:":3000"`
	DatabasePath  string `env:"DATABASE_PATH"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`

	SiteName        string `env:"SITE_NAME" envDefault:"Samaj"`
	SiteURL         string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	SiteDescription string `env:"SITE_DESCRIPTION"`
}
