package blogtext

// Default limits.
const (
	// DefaultMaxChars is the hard cap on cleaned text, in characters.
	DefaultMaxChars = 12000

	// DefaultMinChars is the visible-text length a located fragment must
	// reach before a strategy counts as successful.
	DefaultMinChars = 80

	// DefaultMinBodyBytes is the response size below which a page that
	// should carry an article is treated as a bot-block placeholder.
	DefaultMinBodyBytes = 2000
)

// Platform names the hosts of the target blogging platform.
type Platform struct {
	// Host is the desktop host, e.g. "blog.naver.com".
	Host string `yaml:"host"`

	// MobileHost is the mobile host. Canonical URLs use this host.
	MobileHost string `yaml:"mobile_host"`
}

// Rules holds the data tables that drive extraction. Supporting a new
// editor markup or a new chrome phrase is a change to these tables, not to
// the algorithms that consume them.
type Rules struct {
	Platform Platform `yaml:"platform"`

	// ContentSelectors are CSS selectors for the platform's successive
	// editor versions, in priority order.
	ContentSelectors []string `yaml:"content_selectors"`

	// FrameSelectors locate an embedded frame holding the real post.
	FrameSelectors []string `yaml:"frame_selectors"`

	// StateVariables are client-side state variables assigned in inline
	// scripts, e.g. "__APOLLO_STATE__".
	StateVariables []string `yaml:"state_variables"`

	// StatePaths are gjson key-paths leading from a parsed state object to
	// a rendered content field. The first non-empty hit wins.
	StatePaths []string `yaml:"state_paths"`

	// ChromePhrases are literal UI strings. Lines made up only of these
	// phrases and separators are removed; prose mentioning them is kept.
	ChromePhrases []string `yaml:"chrome_phrases"`

	// ChromePatterns are regular expressions for UI lines that carry
	// counters, e.g. "공감 12". A pattern must match a whole line.
	ChromePatterns []string `yaml:"chrome_patterns"`

	// DisclosurePhrases mark sponsorship lines removed in organic mode.
	DisclosurePhrases []string `yaml:"disclosure_phrases"`

	MaxChars     int `yaml:"max_chars"`
	MinChars     int `yaml:"min_chars"`
	MinBodyBytes int `yaml:"min_body_bytes"`
}

// DefaultRules returns the built-in rule tables for Naver Blog.
func DefaultRules() Rules {
	return Rules{
		Platform: Platform{
			Host:       "blog.naver.com",
			MobileHost: "m.blog.naver.com",
		},
		ContentSelectors: []string{
			"#postViewArea",
			".se-main-container",
			".se_component_wrap",
			"div#postViewArea div",
			"div#post-view",
			".post_ct",
		},
		FrameSelectors: []string{
			"iframe#mainFrame",
			"iframe[name='mainFrame']",
			"frame#mainFrame",
		},
		StateVariables: []string{
			"__APOLLO_STATE__",
			"__INITIAL_STATE__",
			"__PRELOADED_STATE__",
			"__NEXT_DATA__",
		},
		StatePaths: []string{
			"post.contentHtml",
			"post.content",
			"postView.content",
			"postView.contentHtml",
			"props.pageProps.post.contentHtml",
			"props.pageProps.post.content",
			"props.pageProps.article.body",
			"article.body",
			"post.components.#.text",
		},
		ChromePhrases: []string{
			"이웃추가",
			"본문 기타 기능",
			"공유하기",
			"신고하기",
			"URL 복사",
			"블로그 메뉴",
			"글쓰기",
			"맨 위로",
		},
		ChromePatterns: []string{
			`공감\s*\d*`,
			`댓글\s*\d*`,
			`좋아요\s*\d*`,
			`조회\s*\d+`,
			`(?:이웃|구독)\s*\d+\s*명?`,
		},
		DisclosurePhrases: []string{
			"원고료",
			"협찬",
			"제품을 제공받아",
			"제공받아 작성",
			"지원받아 작성",
			"업체로부터",
			"유료 광고",
			"광고 포함",
			"체험단",
			"sponsored",
		},
		MaxChars:     DefaultMaxChars,
		MinChars:     DefaultMinChars,
		MinBodyBytes: DefaultMinBodyBytes,
	}
}
