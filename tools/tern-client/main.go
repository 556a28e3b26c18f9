// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command tern-client provides command line access to the Tern HTTP API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	docopt "github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ternlabs/tern/api"
	"github.com/ternlabs/tern/util/debuglog"
	"github.com/ternlabs/tern/util/table"
)

var fmtr = message.NewPrinter(language.English)

const usage = `tern-client is a command-line tool for calling the Tern API service.

Usage:
  tern-client [--api=HOST -t=DUR -m=MODE -r=FILE] query URL QUERY

Options:
  --api=HOST             Host and port of the Tern API server [default: localhost:9980]
  -t=DUR, --timeout=DUR  Timeout for the API call [default: 30s]
  -m=MODE, --mode=MODE   Rule tier to apply before querying: none, basic,
                         advanced, custom or declarative [default: none]
  -r=FILE, --rules=FILE  File containing rule text for the custom and
                         declarative tiers; "-" reads standard input.

Examples:
  # All books and their authors, after running the basic derivations.
  tern-client -m basic query https://example.org/catalog.html \
      'SELECT ?b ?a WHERE { ?b ex:hasAuthor ?a }'

  # Run one declarative rule, then check its derivation.
  echo '?x ex:hasAuthor ?y => ?y ex:wrote ?x' | \
      tern-client -m declarative -r - query https://example.org/catalog.html \
      'ASK ?a ex:wrote ?b'
`

type options struct {
	Server        string `docopt:"--api"`
	TimeoutString string `docopt:"--timeout"`
	Timeout       time.Duration
	Mode          string `docopt:"--mode"`
	RulesFile     string `docopt:"--rules"`

	Query       bool   `docopt:"query"`
	URL         string `docopt:"URL"`
	QueryString string `docopt:"QUERY"`
}

func parseArgs() *options {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	if options.TimeoutString != "" {
		options.Timeout, err = time.ParseDuration(options.TimeoutString)
		if err != nil {
			log.Fatalf("Unable to parse timeout value: %v", err)
		}
	}
	return &options
}

func main() {
	debuglog.Configure(debuglog.Options{})
	options := parseArgs()

	rules := ""
	switch options.RulesFile {
	case "":
	case "-":
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Unable to read rules from stdin: %v", err)
		}
		rules = string(text)
	default:
		text, err := os.ReadFile(options.RulesFile)
		if err != nil {
			log.Fatalf("Unable to read rules file: %v", err)
		}
		rules = string(text)
	}

	resp, err := postQuery(options, rules)
	if err != nil {
		log.Fatalf("Error executing query: %v", err)
	}
	if resp.Error != "" {
		log.Fatalf("Server reported error: %v", resp.Error)
	}
	printResponse(resp)
}

func postQuery(options *options, rules string) (*api.QueryResponse, error) {
	form := url.Values{}
	form.Set("url", options.URL)
	form.Set("rulemode", options.Mode)
	form.Set("rules", rules)
	form.Set("query", options.QueryString)

	client := http.Client{Timeout: options.Timeout}
	httpResp, err := client.PostForm(fmt.Sprintf("http://%s/q", options.Server), form)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	resp := &api.QueryResponse{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}
	return resp, nil
}

func printResponse(resp *api.QueryResponse) {
	switch {
	case resp.Select != nil:
		t := make([][]string, 0, len(resp.Select.Rows)+1)
		t = append(t, resp.Select.Headers)
		t = append(t, resp.Select.Rows...)
		table.PrettyPrint(os.Stdout, t, table.HeaderRow)
		fmtr.Printf("%d row(s)\n", len(resp.Select.Rows))
	case resp.Ask != nil:
		fmt.Println(*resp.Ask)
	default:
		if resp.Graph == "" {
			fmt.Println("(empty graph)")
		} else {
			fmt.Print(resp.Graph)
		}
		fmtr.Printf("%d statement(s)\n", strings.Count(resp.Graph, "\n"))
	}
	if resp.Rules != nil {
		fmtr.Printf("rules: %d triple(s) added\n", resp.Rules.Added)
		for _, skipped := range resp.Rules.Skipped {
			fmt.Fprintf(os.Stderr, "rule skipped: line %d: %s\n", skipped.Line, skipped.Reason)
		}
	}
}
