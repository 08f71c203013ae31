// Package handlers implements the JSON API of the clinic site:
// appointment and contact forms, Google reviews, stats and the admin
// mail test. Every error body has the shape {"ok": false, "error": "..."}.
package handlers
