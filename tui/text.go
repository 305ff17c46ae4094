package tui

// UI Text Constants
const (
	TextTitle        = "📚 lipu"
	TextRefreshing   = "⏳ Refreshing feeds..."
	TextNoPreview    = "Only text articles can be previewed"
	TextEmptyPreview = "(this article has no text)"
	TextNoArticles   = "No articles yet. Press 'r' to refresh."
	TextDisconnected = "❌ Not connected to lipu server"

	TextFooterList    = "r refresh | j/k move | f mark viewed | u mark unseen | enter read | q quit"
	TextFooterPreview = "enter/esc/q close"
)
