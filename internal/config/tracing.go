package config

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// TraceLevelPrefix is the key prefix of trace levels per tracer, e.g.
// "tracelevel.mbsearch.tokenizer".
const TraceLevelPrefix = "tracelevel"

// tracer traces with key 'mbsearch.config'.
func tracer() tracing.Trace {
	return tracing.Select("mbsearch.config")
}

// SetupTracing registers the trace adapters "go" and "logrus" and configures
// the root tracer from conf. Tracers of all packages are selected from the
// root tracer afterwards.
func SetupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, TraceLevelPrefix, trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("tracing with adapter %q", conf.GetString("tracing.adapter"))
	return nil
}
