package lint

import (
	"fmt"
	"strings"
)

// DefaultStyleGuideURL is the hosted SystemVerilog style guide.
const DefaultStyleGuideURL = "https://google.github.io/verible/verilog_style_guide.html"

// StyleGuideURL can be overridden via config for local or in-house guides.
var StyleGuideURL = DefaultStyleGuideURL

// Citation formats a style-guide reference for a topic.
func Citation(topic string) string {
	if topic == "" {
		return ""
	}
	return fmt.Sprintf("[Style: %s] <%s#%s>", topic, StyleGuideURL, strings.ToLower(topic))
}

// SetStyleGuideURL overrides the style guide base URL.
func SetStyleGuideURL(url string) {
	if url == "" {
		ResetStyleGuideURL()
		return
	}
	StyleGuideURL = strings.TrimSuffix(url, "/")
}

// ResetStyleGuideURL restores the default style guide URL.
func ResetStyleGuideURL() {
	StyleGuideURL = DefaultStyleGuideURL
}
