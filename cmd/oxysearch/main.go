// Command oxysearch searches Google through the Oxylabs Web Scraper API and
// serves the search tools to MCP clients.
//
//	oxysearch search "Python programming language"
//	oxysearch results --pretty --geo-location "Paris,France" "best croissant"
//	oxysearch mcp --config oxysearch.yaml --watch
package main

func main() {
	Execute()
}
