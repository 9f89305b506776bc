// internal/modules/dnsenum/query.go
package dnsenum

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Kuraiyume/Akari/internal/core/logger"
)

// queryAttempts bounds the retry loop: a transient failure is re-issued
// immediately until this many attempts have been made.
const queryAttempts = 3

// QueryResult is the outcome of one (domain, record type) lookup: resolved
// values, an empty value list for a no-answer/NXDOMAIN outcome, or an error
// reason once retries are exhausted.
type QueryResult struct {
	Domain   string   `json:"-"`
	Type     string   `json:"type"`
	Values   []string `json:"values"`
	Error    string   `json:"error,omitempty"`
	NXDomain bool     `json:"-"`
}

// Failed reports whether the lookup failed after retries. A no-answer
// outcome is not a failure.
func (r QueryResult) Failed() bool { return r.Error != "" }

// Engine issues DNS queries against a single nameserver. It is created once
// per run and holds the only dns.Client instances used by that run.
type Engine struct {
	server    string
	client    *dns.Client
	tcpClient *dns.Client
	limiter   *rate.Limiter
	log       *logrus.Logger
}

// NewEngine builds a query engine. An empty nameserver selects the system
// resolver from /etc/resolv.conf, falling back to a public one. qps > 0
// paces queries; 0 disables pacing.
func NewEngine(nameserver string, timeout time.Duration, qps int) *Engine {
	server := nameserver
	if server == "" {
		server = systemNameserver()
	}
	if !strings.Contains(server, ":") {
		server += ":53"
	}

	e := &Engine{
		server:    server,
		client:    &dns.Client{Net: "udp", Timeout: timeout},
		tcpClient: &dns.Client{Net: "tcp", Timeout: timeout},
		log:       logger.GetLogger(),
	}
	if qps > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
	return e
}

// Server returns the nameserver address queries are sent to.
func (e *Engine) Server() string { return e.server }

// Run queries every requested record type for every domain, sequentially,
// and returns one QueryResult per (domain, type) pair in request order.
func (e *Engine) Run(domains []string, types []RecordType) []QueryResult {
	results := make([]QueryResult, 0, len(domains)*len(types))
	for _, domain := range domains {
		for _, rt := range types {
			if e.limiter != nil {
				e.limiter.Wait(context.Background())
			}
			results = append(results, e.Lookup(domain, rt))
		}
	}
	return results
}

// Lookup performs a single (domain, record type) query with bounded retry.
// It never returns a Go error: every outcome is captured in the QueryResult.
func (e *Engine) Lookup(domain string, rt RecordType) QueryResult {
	res := QueryResult{Domain: domain, Type: rt.Name, Values: []string{}}

	var lastErr string
	for attempt := 1; attempt <= queryAttempts; attempt++ {
		msg, err := e.exchange(domain, rt)
		if err != nil {
			if !isTransient(err) {
				res.Error = err.Error()
				return res
			}
			lastErr = err.Error()
			e.log.Debugf("query %s %s attempt %d/%d: %v", domain, rt.Name, attempt, queryAttempts, err)
			continue
		}

		switch msg.Rcode {
		case dns.RcodeSuccess:
			res.Values = answerValues(msg, rt.Qtype)
			return res
		case dns.RcodeNameError:
			res.NXDomain = true
			return res
		case dns.RcodeServerFailure:
			lastErr = "server failure (SERVFAIL)"
			e.log.Debugf("query %s %s attempt %d/%d: SERVFAIL", domain, rt.Name, attempt, queryAttempts)
			continue
		default:
			res.Error = fmt.Sprintf("query rejected: %s", dns.RcodeToString[msg.Rcode])
			return res
		}
	}

	res.Error = fmt.Sprintf("failed after %d attempts: %s", queryAttempts, lastErr)
	return res
}

// exchange sends one query. A truncated UDP answer is re-issued over TCP
// without counting as a retry.
func (e *Engine) exchange(domain string, rt RecordType) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), rt.Qtype)
	m.RecursionDesired = true

	in, _, err := e.client.Exchange(m, e.server)
	if err != nil {
		return nil, err
	}
	if in.Truncated {
		if full, _, terr := e.tcpClient.Exchange(m, e.server); terr == nil {
			return full, nil
		}
	}
	return in, nil
}

// isTransient reports whether a query error is worth retrying.
func isTransient(err error) bool {
	if nerr, ok := err.(net.Error); ok {
		return nerr.Timeout() || nerr.Temporary()
	}
	return false
}

// answerValues extracts the rdata of answers matching the requested type.
// CNAME chain records returned alongside e.g. an A answer are skipped, so
// the values line up with what was asked for.
func answerValues(msg *dns.Msg, qtype uint16) []string {
	values := make([]string, 0, len(msg.Answer))
	for _, rr := range msg.Answer {
		if rr.Header().Rrtype != qtype {
			continue
		}
		values = append(values, rdata(rr))
	}
	return values
}

// rdata strips the name/TTL/class/type header fields from the presentation
// form of a resource record, leaving only the record data.
func rdata(rr dns.RR) string {
	parts := strings.SplitN(rr.String(), "\t", 5)
	return parts[len(parts)-1]
}

// systemNameserver picks the first resolver from /etc/resolv.conf, falling
// back to Google public DNS when none is available.
func systemNameserver() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err == nil && len(conf.Servers) > 0 {
		return net.JoinHostPort(conf.Servers[0], conf.Port)
	}
	return "8.8.8.8:53"
}
