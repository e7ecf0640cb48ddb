package vgroutes

// NewDefault returns a Router for the application's table (BuildRoutes) using the
// base path, mode and logging from cfg.  cfg should already be finalized.
func NewDefault(cfg *Config, opts ...Option) (*Router, error) {
	opts = append([]Option{WithLogger(NewLogger(&cfg.Logging))}, opts...)
	return CreateRouter(BuildRoutes(), cfg.Mode, cfg.BasePath, opts...)
}
