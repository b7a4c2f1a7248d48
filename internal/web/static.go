package web

import (
	"io"
	"net/http"
)

func handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.WriteString(w, siteCSS)
}

const siteCSS = `:root {
	--ink: #1f2933;
	--muted: #6b7280;
	--accent: #0f766e;
	--accent-dark: #115e59;
	--surface: #ffffff;
	--page: #f4f6f5;
	--line: #e5e7eb;
}
* { box-sizing: border-box; }
body {
	margin: 0;
	font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
	color: var(--ink);
	background: var(--page);
}
a { color: var(--accent); }
.navbar {
	display: flex;
	align-items: center;
	gap: 1.5rem;
	padding: 0.75rem 1.5rem;
	background: var(--surface);
	border-bottom: 1px solid var(--line);
}
.navbar .brand { font-weight: 700; color: var(--ink); text-decoration: none; }
.navbar ul { display: flex; gap: 1rem; list-style: none; margin: 0; padding: 0; flex: 1; }
.navbar a { text-decoration: none; }
.navbar a.active { font-weight: 600; }
.nav-session { display: flex; align-items: center; gap: 0.75rem; }
.container { max-width: 960px; margin: 0 auto; padding: 1.5rem; }
.hero { text-align: center; padding: 3rem 1rem; }
.hero h1 { font-size: 2.25rem; margin-bottom: 0.25rem; }
.tagline { color: var(--muted); font-size: 1.1rem; }
.hero-actions { display: flex; gap: 1rem; justify-content: center; margin-top: 1.5rem; }
.button {
	display: inline-block;
	padding: 0.5rem 1rem;
	border: 1px solid var(--accent);
	border-radius: 6px;
	background: var(--surface);
	color: var(--accent);
	text-decoration: none;
	cursor: pointer;
	font: inherit;
}
.button.primary { background: var(--accent); color: #fff; }
.button.primary:hover { background: var(--accent-dark); }
.button.small { padding: 0.25rem 0.6rem; font-size: 0.85rem; }
.card, .panel {
	background: var(--surface);
	border: 1px solid var(--line);
	border-radius: 8px;
	padding: 1.25rem;
	margin-bottom: 1.5rem;
}
.card-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 1rem; }
.community-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
@media (max-width: 720px) { .community-grid { grid-template-columns: 1fr; } }
.badge {
	display: inline-block;
	padding: 0.1rem 0.5rem;
	border-radius: 999px;
	font-size: 0.75rem;
	background: var(--line);
}
.badge.pending { background: #fef3c7; }
.badge.in_progress { background: #dbeafe; }
.badge.resolved, .badge.completed { background: #d1fae5; }
.badge.upcoming { background: #e0e7ff; }
.badge.admin { background: #fde68a; }
.error { color: #b91c1c; }
.success { color: #047857; }
.notice { color: #92400e; }
.muted { color: var(--muted); }
.meta { color: var(--muted); font-size: 0.9rem; }
.wall { list-style: none; padding: 0; margin: 1rem 0 0; }
.wall-post { border-top: 1px solid var(--line); padding: 0.75rem 0; }
.wall-post .author { font-weight: 600; }
.wall-post time { color: var(--muted); font-size: 0.8rem; }
.ticket-list { list-style: none; padding: 0; }
.ticket-list li { display: flex; justify-content: space-between; padding: 0.5rem 0; border-top: 1px solid var(--line); }
form label { display: block; margin-bottom: 0.75rem; }
input[type="text"], input[type="url"], textarea, select {
	width: 100%;
	padding: 0.4rem 0.6rem;
	border: 1px solid var(--line);
	border-radius: 6px;
	font: inherit;
}
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem; border-bottom: 1px solid var(--line); vertical-align: top; }
.stats { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
.stat {
	flex: 1;
	background: var(--surface);
	border: 1px solid var(--line);
	border-radius: 8px;
	padding: 1rem;
	text-align: center;
}
.stat strong { display: block; font-size: 1.75rem; }
.event-images { display: flex; gap: 0.5rem; flex-wrap: wrap; margin-top: 0.75rem; }
.event-images img { max-width: 180px; border-radius: 6px; }
.avatar { width: 72px; height: 72px; border-radius: 50%; object-fit: cover; }
.site-footer { text-align: center; color: var(--muted); padding: 2rem 1rem; }
`
