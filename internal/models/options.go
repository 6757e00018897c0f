package models

// Options holds runtime configuration that is not user-facing.
// Sources, lowest priority first: defaults, options.json, HAMMEROVERLAY_* env.
type Options struct {
	DataDir       string `koanf:"data_dir"`
	ReleasesURL   string `koanf:"releases_url" validate:"required,url"`
	UpdateTimeout int    `koanf:"update_timeout" validate:"min=1,max=600"`
	LogFile       bool   `koanf:"log_file"`
}
