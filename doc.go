// Package oxysearch exposes the Oxylabs search API as tools that an LLM agent
// can call.
//
// The root package defines the tool contract shared by all tools in this
// module: [Tool], [TypedTool], [TypedToolAdapter], and [ToolResult]. Every
// adapted tool can be called synchronously with Call or asynchronously with
// CallAsync, which returns a [Promise].
//
// The Oxylabs client lives in the oxylabs package and the tool wrappers in
// the toolkit package:
//
//	client, err := oxylabs.New()
//	if err != nil {
//	    return err
//	}
//	search := toolkit.NewOxylabsSearchTool(toolkit.OxylabsSearchToolOptions{
//	    Client: client,
//	})
//	result, err := search.Call(ctx, &toolkit.OxylabsSearchInput{
//	    Query: "Python programming language",
//	})
package oxysearch
