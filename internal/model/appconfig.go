package model

// Theme values stored in AppConfig.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// MaxRecentFolders caps AppConfig.RecentFolders.
const MaxRecentFolders = 10

// DefaultAtlasZoom is the preview zoom used until the user changes it.
const DefaultAtlasZoom = 0.6

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new sessions
	DefaultWidth   int        `json:"default_width"`
	DefaultHeight  int        `json:"default_height"`
	DefaultPadding int        `json:"default_padding"`
	DefaultSort    SortMethod `json:"default_sort"`
	ExportQuality  string     `json:"export_quality"` // PNG compression: "fast", "default", "best", "none"

	// Application preferences
	Theme          string   `json:"theme"`      // "light", "dark", "system"
	AtlasZoom      float64  `json:"atlas_zoom"` // Preview zoom factor
	RecentFolders  []string `json:"recent_folders"`
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the values of
// DefaultAtlasConfig.
func DefaultAppConfig() AppConfig {
	defaults := DefaultAtlasConfig()
	return AppConfig{
		DefaultWidth:   defaults.Width,
		DefaultHeight:  defaults.Height,
		DefaultPadding: defaults.Padding,
		DefaultSort:    defaults.Sort,
		ExportQuality:  "default",
		Theme:          ThemeSystem,
		AtlasZoom:      DefaultAtlasZoom,
		RecentFolders:  []string{},
		RecentProjects: []string{},
	}
}

// AtlasConfig builds the atlas config a new session starts with.
func (c AppConfig) AtlasConfig() AtlasConfig {
	cfg := AtlasConfig{
		Width:   c.DefaultWidth,
		Height:  c.DefaultHeight,
		Padding: c.DefaultPadding,
		Sort:    c.DefaultSort,
	}
	if cfg.Validate() != nil {
		return DefaultAtlasConfig()
	}
	return cfg
}

// AddRecentFolder moves folder to the front of the recent list, dropping
// duplicates and trimming to MaxRecentFolders.
func (c *AppConfig) AddRecentFolder(folder string) {
	c.RecentFolders = pushRecent(c.RecentFolders, folder)
}

// AddRecentProject records a project path the same way as AddRecentFolder.
func (c *AppConfig) AddRecentProject(path string) {
	c.RecentProjects = pushRecent(c.RecentProjects, path)
}

func pushRecent(list []string, item string) []string {
	if item == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	for _, existing := range list {
		if existing != item {
			out = append(out, existing)
		}
	}
	if len(out) > MaxRecentFolders {
		out = out[:MaxRecentFolders]
	}
	return out
}

// IsDark reports whether the configured theme forces dark mode.
func (c AppConfig) IsDark() bool {
	return c.Theme == ThemeDark
}
