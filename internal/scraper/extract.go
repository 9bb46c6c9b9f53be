package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	maxServices   = 10
	maxAboutChars = 1000
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9][0-9\s().\-]{7,}[0-9]`)
	spacePattern = regexp.MustCompile(`\s+`)
)

var socialHosts = map[string]string{
	"facebook.com":  "facebook",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"youtube.com":   "youtube",
}

// page is the flattened view of a parsed document.
type page struct {
	title       string
	metaDesc    string
	siteName    string
	h1          string
	text        string
	address     string
	mailtos     []string
	tels        []string
	links       []string
	serviceList []string
	aboutText   string
}

func (s *Scraper) extract(doc *html.Node, source string) *Profile {
	p := &page{}
	collect(doc, p, "")

	profile := &Profile{
		Name:        s.clean(firstNonEmpty(p.siteName, titleName(p.title), p.h1, hostName(source))),
		Description: s.clean(firstNonEmpty(p.metaDesc, p.aboutText)),
		About:       truncate(s.clean(p.aboutText), maxAboutChars),
		Services:    s.services(p.serviceList),
		SocialMedia: socialLinks(p.links),
	}
	profile.Contact = Contact{
		Email:   s.email(p),
		Phone:   s.phone(p),
		Address: s.clean(p.address),
	}
	profile.Industry = Classify(strings.Join([]string{
		profile.Name, profile.Description, profile.About, strings.Join(profile.Services, " "),
	}, " "))
	return profile
}

// collect walks the tree once. section is the lower-cased id or class of the
// nearest enclosing element naming a services or about block.
func collect(n *html.Node, p *page, section string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return
		case atom.Title:
			if p.title == "" {
				p.title = textOf(n)
			}
		case atom.Meta:
			name := strings.ToLower(attr(n, "name") + attr(n, "property"))
			switch name {
			case "description", "og:description":
				if p.metaDesc == "" {
					p.metaDesc = attr(n, "content")
				}
			case "og:site_name":
				p.siteName = attr(n, "content")
			}
		case atom.H1:
			if p.h1 == "" {
				p.h1 = textOf(n)
			}
		case atom.Address:
			if p.address == "" {
				p.address = textOf(n)
			}
		case atom.A:
			href := strings.TrimSpace(attr(n, "href"))
			switch {
			case strings.HasPrefix(strings.ToLower(href), "mailto:"):
				p.mailtos = append(p.mailtos, strings.SplitN(href[len("mailto:"):], "?", 2)[0])
			case strings.HasPrefix(strings.ToLower(href), "tel:"):
				p.tels = append(p.tels, href[len("tel:"):])
			case href != "":
				p.links = append(p.links, href)
			}
		case atom.Li, atom.H3:
			if section == "services" {
				if t := textOf(n); t != "" {
					p.serviceList = append(p.serviceList, t)
				}
			}
		case atom.P:
			if section == "about" && p.aboutText == "" {
				p.aboutText = textOf(n)
			}
		}
		if marker := sectionOf(n); marker != "" {
			section = marker
		}
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			p.text += " " + t
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, p, section)
	}
}

func sectionOf(n *html.Node) string {
	marker := strings.ToLower(attr(n, "id") + " " + attr(n, "class"))
	switch {
	case strings.Contains(marker, "service"), strings.Contains(marker, "offering"):
		return "services"
	case strings.Contains(marker, "about"):
		return "about"
	}
	return ""
}

func (s *Scraper) services(raw []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		v := s.clean(r)
		if v == "" || len(v) > 120 || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
		if len(out) == maxServices {
			break
		}
	}
	return out
}

func (s *Scraper) email(p *page) string {
	for _, m := range p.mailtos {
		if e := strings.TrimSpace(m); emailPattern.MatchString(e) {
			return strings.ToLower(e)
		}
	}
	return strings.ToLower(emailPattern.FindString(p.text))
}

func (s *Scraper) phone(p *page) string {
	candidates := append([]string{}, p.tels...)
	candidates = append(candidates, phonePattern.FindAllString(p.text, 5)...)
	for _, c := range candidates {
		if n := NormalizePhone(c, s.region); n != "" {
			return n
		}
	}
	return ""
}

// NormalizePhone returns raw in E.164 form, or "" when it is not a valid
// number for region.
func NormalizePhone(raw, region string) string {
	number, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func socialLinks(links []string) map[string]string {
	out := make(map[string]string)
	for _, l := range links {
		u, err := url.Parse(l)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		if network, ok := socialHosts[host]; ok {
			if _, exists := out[network]; !exists {
				out[network] = u.String()
			}
		}
	}
	return out
}

// clean strips markup and collapses whitespace.
func (s *Scraper) clean(v string) string {
	v = html.UnescapeString(s.policy.Sanitize(v))
	return strings.TrimSpace(spacePattern.ReplaceAllString(v, " "))
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(spacePattern.ReplaceAllString(b.String(), " "))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// titleName keeps the part of a page title before the first separator.
func titleName(title string) string {
	for _, sep := range []string{" | ", " - ", " – ", " :: "} {
		if i := strings.Index(title, sep); i > 0 {
			return title[:i]
		}
	}
	return title
}

func hostName(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncate(v string, max int) string {
	r := []rune(v)
	if len(r) <= max {
		return v
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}
