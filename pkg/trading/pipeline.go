package trading

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/config"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/feed"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/sink"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading/model"
)

// History and GUI file names under the configured output directory.
const (
	FilePositions = "positions.txt"
	FileRisk      = "risk.txt"
	FileExecution = "executions.txt"
	FileStreaming = "streaming.txt"
	FileInquiries = "allinquiries.txt"
	FileGUI       = "gui.txt"
)

// pipelineEdges declares the listener graph wired in wire(). The acyclicity
// check runs over this table before any listener is registered.
var pipelineEdges = []edge{
	{"pricing", "algostreaming"},
	{"pricing", "gui"},
	{"algostreaming", "streaming"},
	{"streaming", "streaminghistory"},
	{"marketdata", "algoexecution"},
	{"algoexecution", "execution"},
	{"execution", "executionhistory"},
	{"execution", "tradebooking"},
	{"tradebooking", "position"},
	{"position", "positionhistory"},
	{"position", "risk"},
	{"risk", "riskhistory"},
	{"inquiry", "inquiryhistory"},
}

type edge struct {
	from, to string
}

// Pipeline owns the whole trading process: four feed intakes, the service
// graph, two downstream sockets and six output files.
type Pipeline struct {
	Pricing    *PricingService
	AlgoStream *AlgoStreamingService
	Streaming  *StreamingService
	GUI        *GUIService
	MarketData *MarketDataService
	AlgoExec   *AlgoExecutionService
	Execution  *ExecutionService
	TradeBook  *TradeBookingService
	Position   *PositionService
	Risk       *RiskService
	Inquiry    *InquiryService

	PositionHistory  *HistoricalDataService[string, model.Position]
	RiskHistory      *HistoricalDataService[string, model.PV01]
	ExecutionHistory *HistoricalDataService[string, model.ExecutionOrder]
	StreamingHistory *HistoricalDataService[string, model.PriceStream]
	InquiryHistory   *HistoricalDataService[string, model.Inquiry]

	feeds       []*feed.Server
	socketSinks []*sink.SocketSink
	fileSinks   []*sink.FileSink
	log         *zap.SugaredLogger
}

// NewPipeline builds and wires everything. Nothing moves until Start.
func NewPipeline(cfg *config.AppConfig) (*Pipeline, error) {
	p := &Pipeline{log: zap.S().Named("pipeline")}

	streamSink := sink.NewSocketSink(&sink.SocketSinkConfig{Name: "stream", Addr: cfg.Downstream.StreamAddr})
	execSink := sink.NewSocketSink(&sink.SocketSinkConfig{Name: "execution", Addr: cfg.Downstream.ExecutionAddr})
	p.socketSinks = []*sink.SocketSink{streamSink, execSink}

	file := func(name string) (*sink.FileSink, error) {
		fs, err := sink.NewFileSink(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		p.fileSinks = append(p.fileSinks, fs)
		return fs, nil
	}
	positionFile, err := file(FilePositions)
	if err != nil {
		return nil, err
	}
	riskFile, err := file(FileRisk)
	if err != nil {
		return nil, err
	}
	executionFile, err := file(FileExecution)
	if err != nil {
		return nil, err
	}
	streamingFile, err := file(FileStreaming)
	if err != nil {
		return nil, err
	}
	inquiryFile, err := file(FileInquiries)
	if err != nil {
		return nil, err
	}
	guiFile, err := file(FileGUI)
	if err != nil {
		return nil, err
	}

	p.Pricing = NewPricingService()
	p.AlgoStream = NewAlgoStreamingService()
	p.Streaming = NewStreamingService(streamSink)
	p.GUI = NewGUIService(guiFile, time.Duration(cfg.GUI.ThrottleMs)*time.Millisecond)
	p.MarketData = NewMarketDataService()
	p.AlgoExec = NewAlgoExecutionService()
	p.Execution = NewExecutionService(execSink)
	p.TradeBook = NewTradeBookingService()
	p.Position = NewPositionService()
	p.Risk = NewRiskService()
	p.Inquiry = NewInquiryService()

	p.PositionHistory = NewHistoricalDataService(positionFile, func(v model.Position) string { return v.Product.CUSIP })
	p.RiskHistory = NewHistoricalDataService(riskFile, func(v model.PV01) string { return v.Product.CUSIP })
	p.ExecutionHistory = NewHistoricalDataService(executionFile, func(v model.ExecutionOrder) string { return v.OrderID })
	p.StreamingHistory = NewHistoricalDataService(streamingFile, func(v model.PriceStream) string { return v.Product.CUSIP })
	p.InquiryHistory = NewHistoricalDataService(inquiryFile, func(v model.Inquiry) string { return v.InquiryID })

	if err := p.wire(); err != nil {
		return nil, err
	}

	p.feeds = []*feed.Server{
		feed.NewServer(&feed.ServerConfig{Name: "price", ListenAddr: cfg.Feeds.Price.ListenAddr, ReplayFile: cfg.Feeds.Price.ReplayFile}, p.Pricing.HandleLine),
		feed.NewServer(&feed.ServerConfig{Name: "marketdata", ListenAddr: cfg.Feeds.MarketData.ListenAddr, ReplayFile: cfg.Feeds.MarketData.ReplayFile}, p.MarketData.HandleLine),
		feed.NewServer(&feed.ServerConfig{Name: "trade", ListenAddr: cfg.Feeds.Trade.ListenAddr, ReplayFile: cfg.Feeds.Trade.ReplayFile}, p.TradeBook.HandleLine),
		feed.NewServer(&feed.ServerConfig{Name: "inquiry", ListenAddr: cfg.Feeds.Inquiry.ListenAddr, ReplayFile: cfg.Feeds.Inquiry.ReplayFile}, p.Inquiry.HandleLine),
	}

	return p, nil
}

// wire registers every listener, notification order matching declaration
// order. The edge table is checked first so a bad graph never half-wires.
func (p *Pipeline) wire() error {
	if err := checkAcyclic(pipelineEdges); err != nil {
		return err
	}

	p.Pricing.AddListener(p.AlgoStream)
	p.Pricing.AddListener(p.GUI)
	p.AlgoStream.AddListener(p.Streaming)
	p.Streaming.AddListener(p.StreamingHistory)
	p.MarketData.AddListener(p.AlgoExec)
	p.AlgoExec.AddListener(p.Execution)
	p.Execution.AddListener(p.ExecutionHistory)
	p.Execution.AddListener(newExecutionTradeListener(p.TradeBook))
	p.TradeBook.AddListener(p.Position)
	p.Position.AddListener(p.PositionHistory)
	p.Position.AddListener(p.Risk)
	p.Risk.AddListener(p.RiskHistory)
	p.Inquiry.AddListener(p.InquiryHistory)
	return nil
}

// Start brings the downstream sinks up first so nothing published during
// intake is lost to a cold sink, then opens the feeds. A feed that cannot
// start is logged and skipped; the rest keep running.
func (p *Pipeline) Start() {
	for _, s := range p.socketSinks {
		s.Start()
	}
	for _, f := range p.feeds {
		if err := f.Start(); err != nil {
			p.log.Errorw("feed failed to start", "err", err)
		}
	}
}

// Close tears down in reverse: feeds stop first so no record enters a
// closing graph, then the sinks flush.
func (p *Pipeline) Close() {
	for _, f := range p.feeds {
		f.Close()
	}
	for _, s := range p.socketSinks {
		s.Close()
	}
	for _, fs := range p.fileSinks {
		fs.Close()
	}
}

// checkAcyclic runs Kahn's algorithm over the declared edges.
func checkAcyclic(edges []edge) error {
	indegree := map[string]int{}
	out := map[string][]string{}
	for _, e := range edges {
		out[e.from] = append(out[e.from], e.to)
		indegree[e.to]++
		if _, ok := indegree[e.from]; !ok {
			indegree[e.from] = 0
		}
	}

	var ready []string
	for n, d := range indegree {
		if d == 0 {
			ready = append(ready, n)
		}
	}
	seen := 0
	for len(ready) > 0 {
		n := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		seen++
		for _, m := range out[n] {
			indegree[m]--
			if indegree[m] == 0 {
				ready = append(ready, m)
			}
		}
	}
	if seen != len(indegree) {
		var stuck []string
		for n, d := range indegree {
			if d > 0 {
				stuck = append(stuck, n)
			}
		}
		return fmt.Errorf("%w: %s", errCyclicWiring, strings.Join(stuck, ", "))
	}
	return nil
}
