package manifest

// Extension is the parsed extension.json found at an extension package root.
// Title drives the registry sort order; everything else is informational.
type Extension struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Authors     []Author `json:"authors,omitempty"`
}

// Author identifies one extension author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// InstallEntry is one package record in the host's install manifest.
type InstallEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

// InstallManifest is the host's record of every installed package. Only
// entries whose Type carries the extension marker are extensions.
type InstallManifest struct {
	Packages []InstallEntry `json:"packages"`
}
