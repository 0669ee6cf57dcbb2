package types

import "fmt"

// Experiment runs a single agent configuration and keeps the resulting
// traces for analysis
type Experiment struct {
	config *AgentConfig
	name   string
	Result []*Trace
}

func NewExperiment(name string, config *AgentConfig) *Experiment {
	return &Experiment{
		config: config,
		name:   name,
		Result: make([]*Trace, 0),
	}
}

func (e *Experiment) Name() string {
	return e.name
}

func (e *Experiment) Run() {
	fmt.Printf("Running Experiment: %s\n", e.name)
	e.run(func(episode int) {
		fmt.Printf("\rExperiment: %s, Episode: %d/%d", e.name, episode+1, e.config.Episodes)
	})
	fmt.Println("")
}

// run executes the episodes, reporting progress through status
func (e *Experiment) run(status func(episode int)) {
	agent := NewAgent(e.config)
	for i := 0; i < e.config.Episodes; i++ {
		if status != nil {
			status(i)
		}
		agent.traces[i] = agent.runEpisode(i)
	}
	e.Result = agent.traces
}

type DataSet interface{}

type Analyzer func([]*Trace) DataSet

type Comparator func([]string, []DataSet)

type analysis struct {
	analyzer   Analyzer
	comparator Comparator
}

// Comparison runs a set of experiments and feeds their analyzed results
// to comparators (typically plotters)
type Comparison struct {
	Experiments []*Experiment
	analyses    []analysis
}

func NewComparison(analyzer Analyzer, comparator Comparator) *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyses:    []analysis{{analyzer: analyzer, comparator: comparator}},
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// AddAnalysis registers a further analyzer/comparator pair run on the
// same traces
func (c *Comparison) AddAnalysis(analyzer Analyzer, comparator Comparator) {
	c.analyses = append(c.analyses, analysis{analyzer: analyzer, comparator: comparator})
}

func (c *Comparison) Run() {
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		e.Run()
		names[i] = e.name
	}
	c.compare(names)
}

func (c *Comparison) compare(names []string) {
	for _, an := range c.analyses {
		datasets := make([]DataSet, len(c.Experiments))
		for i, e := range c.Experiments {
			datasets[i] = an.analyzer(e.Result)
		}
		an.comparator(names, datasets)
	}
}
