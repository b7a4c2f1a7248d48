// Package branding centralizes user-visible chapter naming.
package branding

// AppName is the display name used across page titles and layouts.
const AppName = "YouthLead Puerto Princesa"

// ChapterTagline appears on the landing page hero and meta descriptions.
const ChapterTagline = "Empowering young leaders to serve the community"
