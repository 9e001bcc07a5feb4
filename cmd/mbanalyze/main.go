/*
Command mbanalyze shows how text is analyzed for the search index.

	mbanalyze [-config file] [-field name] [-profile name] [-workers n] [-values] [-explain] [text ...]

Every argument is analyzed as a separate field value. Without arguments,
every line read from stdin is analyzed. With -values, an input is split at
'|' into the values of a multi-valued field, which are analyzed as a single
token stream with the configured position gap (analysis.positiongap)
between values. Tokens are printed one per line as

	term kind start-end +posinc

followed by an empty line after each value. With -explain, the length norm
of the field is explained after the tokens of a value.

The profile is looked up for the field in the configured registry, unless
given explicitly with -profile.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/mbsearch"
	"github.com/npillmayer/mbsearch/analyzer"
	"github.com/npillmayer/mbsearch/internal/config"
	"github.com/npillmayer/mbsearch/similarity"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mbsearch.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.cmd")
}

func main() {
	configFile := flag.String("config", "", "configuration file (.nt or .yaml)")
	field := flag.String("field", "", "field name, selects the profile from the field registry")
	profileName := flag.String("profile", "", "profile name, one of "+strings.Join(analyzer.ProfileNames(), ", "))
	workers := flag.Int("workers", 4, "number of concurrent analyzers for stdin")
	explain := flag.Bool("explain", false, "explain the length norm of the field")
	values := flag.Bool("values", false, "split inputs at '|' into the values of a multi-valued field")
	flag.Parse()

	conf, err := config.Load(*configFile)
	if err != nil {
		fail(err)
	}
	if err := config.SetupTracing(conf); err != nil {
		fail(err)
	}
	settings, err := config.FromConfiguration(conf)
	if err != nil {
		fail(err)
	}
	profile := settings.Registry.Lookup(*field)
	if *profileName != "" {
		var ok bool
		if profile, ok = analyzer.ProfileByName(*profileName); !ok {
			fail(fmt.Errorf("%q: %w", *profileName, analyzer.ErrUnknownProfile))
		}
	}
	tracer().Infof("analyzing field %q with profile %s", *field, profile.Name)

	ctx := context.Background()
	pool := analyzer.NewPool(ctx, profile, settings.PoolMaxIdle,
		analyzer.MaxTokenLength(settings.MaxTokenLength))
	defer pool.Close(ctx)
	r := &runner{
		pool:    pool,
		field:   *field,
		scorer:  settings.Scorer,
		explain: *explain,
		values:  *values,
		gap:     settings.PositionGap,
	}
	var input <-chan string
	if flag.NArg() > 0 {
		input = fromArgs(flag.Args())
	} else {
		input = fromReader(os.Stdin)
	}
	if err := r.run(ctx, input, *workers, os.Stdout); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "mbanalyze: %v\n", err)
	os.Exit(1)
}

func fromArgs(args []string) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, arg := range args {
			ch <- arg
		}
	}()
	return ch
}

func fromReader(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
		if err := sc.Err(); err != nil {
			tracer().Errorf("reading input: %v", err)
		}
	}()
	return ch
}

// --- Worker pool -------------------------------------------------------

// valueSeparator separates the values of a multi-valued field in the input.
const valueSeparator = "|"

type runner struct {
	pool    *analyzer.Pool
	field   string
	scorer  *similarity.Scorer
	explain bool
	values  bool // input holds '|'-separated values
	gap     int  // position gap between values
}

type job struct {
	seq  int
	text string
}

type result struct {
	seq int
	out string
	err error
}

// run analyzes the values from input with a number of workers and writes
// the results to w, in input order.
func (r *runner) run(ctx context.Context, input <-chan string, workers int, w io.Writer) error {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan job)
	results := make(chan result)
	go func() {
		defer close(jobs)
		seq := 0
		for text := range input {
			jobs <- job{seq, text}
			seq++
		}
	}()
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for j := range jobs {
				out, err := r.analyze(ctx, j.text)
				results <- result{j.seq, out, err}
			}
			done <- struct{}{}
		}()
	}
	go func() {
		for i := 0; i < workers; i++ {
			<-done
		}
		close(results)
	}()
	pending := make(map[int]string)
	next := 0
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		pending[res.seq] = res.out
		for out, ok := pending[next]; ok; out, ok = pending[next] {
			if _, err := io.WriteString(w, out); err != nil && firstErr == nil {
				firstErr = err
			}
			delete(pending, next)
			next++
		}
	}
	return firstErr
}

// analyze runs a single value through a pooled analyzer and formats the
// tokens.
func (r *runner) analyze(ctx context.Context, text string) (string, error) {
	a, err := r.pool.Borrow(ctx)
	if err != nil {
		return "", err
	}
	var tokens []mbsearch.Token
	if r.values {
		tokens = a.AnalyzeValues(strings.Split(text, valueSeparator), r.gap)
	} else {
		tokens = a.Analyze(text)
	}
	err = a.Err()
	if rerr := r.pool.Return(ctx, a); err == nil {
		err = rerr
	}
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s %s %d-%d +%d\n", tok.Term, tok.Kind, tok.Start, tok.End, tok.PosInc)
	}
	if r.explain {
		sb.WriteString(r.scorer.ExplainNorm(r.field, len(tokens)).String())
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}
