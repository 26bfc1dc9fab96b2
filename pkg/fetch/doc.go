// Package fetch runs one search-then-download operation against Unsplash.
//
// A Pipeline performs, in order:
//   - Creating the output directory
//   - One search call for the query, asking for Count results
//   - One concurrent download per returned photo
//
// The remote service is trusted to return at most Count results; the pipeline
// downloads every photo it gets back and does not page. A search with no
// results is not an error.
//
// A photo that lacks the requested size, a non-2xx image response, or a write
// failure fails only that photo. The other downloads still run to completion,
// and Run then returns a *PipelineError. Files written before the failure are
// left on disk.
//
// Usage:
//
//	p := fetch.NewFromConfig(cfg, creds.AccessKey)
//	summary, err := p.Run(ctx, fetch.Request{
//	    Query:     "mountains",
//	    Count:     3,
//	    Size:      "full",
//	    OutputDir: "./unsplash-images",
//	})
package fetch
