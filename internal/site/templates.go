package site

// pageTemplate is the HTML shell for every page.
const pageTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar">
    <h2 class="site-title"><a href="{{.BasePath}}index.html">{{.SiteName}}</a></h2>
    <ul>
    {{- range .Nav}}
      <li{{if .Active}} class="active"{{end}}><a href="{{$.BasePath}}{{.Href}}">{{.Title}}</a></li>
    {{- end}}
    </ul>
  </nav>
  <main class="content">
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
</body>
</html>`

// cssContent styles the generated pages.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f3f4f6;
  --text: #1f2937;
  --muted: #6b7280;
  --border: #e5e7eb;
  --accent: #4f46e5;
  --accent-light: #e0e7ff;
  --sidebar-width: 260px;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  display: flex;
  font-family: Inter, Helvetica, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
}
.sidebar {
  width: var(--sidebar-width);
  min-height: 100vh;
  padding: 1.5rem 1rem;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
}
.sidebar ul { list-style: none; padding: 0; }
.sidebar li { margin: 0.25rem 0; }
.sidebar li a { display: block; padding: 0.35rem 0.5rem; border-radius: 6px; color: var(--text); text-decoration: none; }
.sidebar li.active a, .sidebar li a:hover { background: var(--accent-light); color: var(--accent); }
.site-title a { color: var(--accent); text-decoration: none; }
.content { flex: 1; padding: 2rem 3rem; max-width: 1100px; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid var(--border); padding: 0.4rem 0.6rem; }
th { background: var(--bg-sidebar); }
tr:nth-child(even) td { background: #fafafa; }
pre { padding: 1rem; border-radius: 8px; overflow-x: auto; border: 1px solid var(--border); }
img.tree { max-width: 100%; border: 1px solid var(--border); border-radius: 8px; }
em { color: var(--muted); }
`
