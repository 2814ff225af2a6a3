// Package brudoc turns Bruno `.bru` collections into documentation.
//
// Parse a collection directory into a tree:
//
//	ctx := context.Background()
//	c, _ := brudoc.ParseCollection(ctx, "Collection", brudoc.ParseOptions{
//		Exclude: []string{"drafts", "*-wip"},
//	})
//	fmt.Println(c.Name, c.CountFiles())
//
// Build a documentation page:
//
//	format, _ := brudoc.ParseFormat("html")
//	path, _ := brudoc.Build(ctx, c, brudoc.BuildOptions{
//		Format: format,
//		Output: "docs",
//	})
//
// Custom templates live in <dir>/<format>/<name>.tmpl with optional partials
// in <dir>/<format>/partials:
//
//	format, _ := brudoc.ParseFormat("html:compact")
//	brudoc.Build(ctx, c, brudoc.BuildOptions{Format: format, Templates: "templates"})
//
// Other formats are md, json (the parsed tree), openapi and openapi:yaml.
//
// Highlight a JSON body that embeds {{variables}}:
//
//	html := brudoc.FormatJSON(ctx, `{"id": "{{userId}}"}`, brudoc.ModeHTML)
//
// FormatJSON never fails; input it cannot render is returned unchanged.
package brudoc
