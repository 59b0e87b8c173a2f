package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/tj/kingpin"
	"github.com/yields/urlnorm"
)

var (
	app     = kingpin.New("urlnorm", "Normalize and transform URLs.")
	level   = app.Flag("log-level", "Log level.").Default("info").Envar("URLNORM_LOG_LEVEL").String()
	schemes = app.Flag("scheme", "Accepted scheme, repeatable.").Envar("URLNORM_SCHEMES").Strings()

	valid     = app.Command("valid", "Print whether URLs are valid.")
	validURLs = valid.Arg("urls", "URLs, read from stdin when empty.").Strings()

	sameHost     = app.Command("same-host", "Print whether two URLs have the same host.")
	sameHostURL1 = sameHost.Arg("url1", "First URL.").Required().String()
	sameHostURL2 = sameHost.Arg("url2", "Second URL.").Required().String()
	sameHostWWW  = sameHost.Flag("keep-www", "Compare the www label.").Bool()

	encode     = app.Command("encode", "Percent-encode URLs.")
	encodeURLs = encode.Arg("urls", "URLs, read from stdin when empty.").Strings()

	decode     = app.Command("decode", "Decode URLs.")
	decodeURLs = decode.Arg("urls", "URLs, read from stdin when empty.").Strings()

	punycode     = app.Command("punycode", "Convert URLs to punycode.")
	punycodeURLs = punycode.Arg("urls", "URLs, read from stdin when empty.").Strings()

	unpunycode     = app.Command("unpunycode", "Convert URLs from punycode.")
	unpunycodeURLs = unpunycode.Arg("urls", "URLs, read from stdin when empty.").Strings()

	hostname       = app.Command("hostname", "Print the hostname of URLs.")
	hostnameURLs   = hostname.Arg("urls", "URLs, read from stdin when empty.").Strings()
	hostnameDecode = hostname.Flag("decode", "Print unicode hostnames.").Bool()
	hostnameWWW    = hostname.Flag("keep-www", "Keep the www label.").Bool()

	parse     = app.Command("parse", "Print the components of URLs as JSON.")
	parseURLs = parse.Arg("urls", "URLs, read from stdin when empty.").Strings()

	build      = app.Command("build", "Build URLs from JSON components.")
	buildLines = build.Arg("components", "JSON objects, read from stdin when empty.").Strings()

	httpLess     = app.Command("http-less", "Remove the http scheme.")
	httpLessURLs = httpLess.Arg("urls", "URLs, read from stdin when empty.").Strings()

	addHTTP       = app.Command("add-http", "Add the http scheme.")
	addHTTPURLs   = addHTTP.Arg("urls", "URLs, read from stdin when empty.").Strings()
	addHTTPSecure = addHTTP.Flag("secure", "Add https.").Envar("URLNORM_SECURE").Bool()

	proto     = app.Command("proto", "Print the http scheme of URLs.")
	protoURLs = proto.Arg("urls", "URLs, read from stdin when empty.").Strings()

	wwwLess     = app.Command("www-less", "Remove the www label.")
	wwwLessURLs = wwwLess.Arg("urls", "URLs, read from stdin when empty.").Strings()

	addWWW     = app.Command("add-www", "Add the www label.")
	addWWWURLs = addWWW.Arg("urls", "URLs, read from stdin when empty.").Strings()

	dedupe      = app.Command("dedupe", "Print URLs whose decoded form was not seen yet.")
	dedupeURLs  = dedupe.Arg("urls", "URLs, read from stdin when empty.").Strings()
	dedupeBloom = dedupe.Flag("bloom", "Bloom filter size in bits, 0 uses a map.").Default("0").Uint()

	match        = app.Command("match", "Print URLs that match.")
	matchURLs    = match.Arg("urls", "URLs, read from stdin when empty.").Strings()
	matchHost    = match.Flag("host", "Same host as.").String()
	matchWWW     = match.Flag("keep-www", "Compare the www label.").Bool()
	matchPattern = match.Flag("pattern", "Glob pattern.").String()
	matchRegexp  = match.Flag("regexp", "Regular expression.").String()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	log.SetHandler(cli.New(os.Stderr))

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		log.WithError(err).Fatal("parse log level")
	}
	log.SetLevel(lvl)

	n, err := urlnorm.New(urlnorm.Config{
		Schemes: *schemes,
	})
	if err != nil {
		log.WithError(err).Fatal("new normalizer")
	}

	if !run(context.Background(), n, cmd) {
		os.Exit(1)
	}
}

// Run runs the command and returns false if any URL failed.
func run(ctx context.Context, n *urlnorm.Normalizer, cmd string) bool {
	switch cmd {
	case valid.FullCommand():
		return each(*validURLs, func(uri string) (string, error) {
			return strconv.FormatBool(n.IsValid(uri)), nil
		})

	case sameHost.FullCommand():
		same, err := n.IsSameHost(*sameHostURL1, *sameHostURL2, *sameHostWWW)
		if err != nil {
			log.WithError(err).Error("same host")
			return false
		}
		fmt.Println(same)
		return true

	case encode.FullCommand():
		return each(*encodeURLs, n.Encode)

	case decode.FullCommand():
		return each(*decodeURLs, n.Decode)

	case punycode.FullCommand():
		return each(*punycodeURLs, n.ToPunycode)

	case unpunycode.FullCommand():
		return each(*unpunycodeURLs, n.FromPunycode)

	case hostname.FullCommand():
		var opts = urlnorm.HostOptions{
			Decode:  *hostnameDecode,
			KeepWWW: *hostnameWWW,
		}
		return each(*hostnameURLs, func(uri string) (string, error) {
			return n.Hostname(uri, opts)
		})

	case parse.FullCommand():
		return each(*parseURLs, func(uri string) (string, error) {
			c, err := n.Parse(uri)
			if err != nil {
				return "", err
			}
			return marshal(c)
		})

	case build.FullCommand():
		return each(*buildLines, func(line string) (string, error) {
			var m map[string]interface{}
			if err := json.Unmarshal([]byte(line), &m); err != nil {
				return "", fmt.Errorf("urlnorm: parse components - %w", err)
			}
			return urlnorm.Build(m), nil
		})

	case httpLess.FullCommand():
		return each(*httpLessURLs, lexical(urlnorm.HTTPLess))

	case addHTTP.FullCommand():
		return each(*addHTTPURLs, lexical(func(uri string) string {
			return urlnorm.AddHTTP(uri, *addHTTPSecure)
		}))

	case proto.FullCommand():
		return each(*protoURLs, lexical(func(uri string) string {
			if p, ok := urlnorm.Proto(uri); ok {
				return p
			}
			return "false"
		}))

	case wwwLess.FullCommand():
		return each(*wwwLessURLs, lexical(urlnorm.WWWLess))

	case addWWW.FullCommand():
		return each(*addWWWURLs, lexical(urlnorm.AddWWW))

	case dedupe.FullCommand():
		return unique(ctx, n, *dedupeURLs, *dedupeBloom)

	case match.FullCommand():
		return filter(n, *matchURLs)
	}

	return false
}

// Unique prints URLs whose decoded form was not seen yet.
func unique(ctx context.Context, n *urlnorm.Normalizer, urls []string, bits uint) bool {
	var d = urlnorm.DedupeMap()

	if bits > 0 {
		d = urlnorm.DedupeBF(bits, 5)
	}

	return each(urls, func(uri string) (string, error) {
		ret, err := n.Unique(ctx, d, []string{uri})
		if err != nil || len(ret) == 0 {
			return "", err
		}
		return ret[0], nil
	})
}

// Filter prints URLs that match all configured matchers.
func filter(n *urlnorm.Normalizer, urls []string) bool {
	var matchers []urlnorm.Matcher

	if *matchHost != "" {
		if !n.IsValid(*matchHost) {
			log.WithField("host", *matchHost).Error("invalid host")
			return false
		}
		matchers = append(matchers, n.MatchHost(*matchHost, *matchWWW))
	}

	if *matchPattern != "" {
		matchers = append(matchers, urlnorm.MatchPattern(*matchPattern))
	}

	if *matchRegexp != "" {
		matchers = append(matchers, urlnorm.MatchRegexp(*matchRegexp))
	}

	return each(urls, func(uri string) (string, error) {
		for _, m := range matchers {
			if !m.Match(uri) {
				log.WithField("url", uri).Debug("no match")
				return "", nil
			}
		}
		return uri, nil
	})
}

// Lexical adapts a lexical helper.
func lexical(fn func(string) string) func(string) (string, error) {
	return func(uri string) (string, error) {
		return fn(uri), nil
	}
}

// Marshal encodes components as JSON.
func marshal(c urlnorm.Components) (string, error) {
	buf, err := json.Marshal(map[string]string{
		"protocol": c.Protocol,
		"auth":     c.Auth,
		"hostname": c.Hostname,
		"port":     c.Port,
		"pathname": c.Pathname,
		"hash":     c.Hash,
		"query":    c.Query,
	})
	if err != nil {
		return "", fmt.Errorf("urlnorm: marshal components - %w", err)
	}
	return string(buf), nil
}
