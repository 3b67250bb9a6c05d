// Package monitoring turns a set of interrupt controllers into a web server,
// so that their configuration can be inspected and interrupts raised from
// outside the process.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/irqhal/irq"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor serves the controllers of a registry over HTTP. Operations that
// arrive over the network are serialized, as the controllers do not lock.
type Monitor struct {
	registry   *irq.Registry
	portNumber int
	opLock     sync.Mutex
	server     *http.Server

	statsLock sync.Mutex
	stats     map[string]*statsTracker
	metrics   *metrics
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		stats:   make(map[string]*statsTracker),
		metrics: newMetrics(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRegistry sets the registry whose controllers are served.
func (m *Monitor) RegisterRegistry(r *irq.Registry) {
	m.registry = r
}

func (m *Monitor) handles() []irq.Handle {
	if m.registry == nil {
		return nil
	}

	return m.registry.Handles()
}

// Handler returns the router of the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/controllers", m.listControllers).Methods("GET")
	r.HandleFunc("/api/controller/{kind}/{index:[0-9]+}",
		m.showController).Methods("GET")
	r.HandleFunc("/api/controller/{kind}/{index:[0-9]+}/{op}/{id:-?[0-9]+}",
		m.idOp).Methods("POST")
	r.HandleFunc("/api/controller/{kind}/{index:[0-9]+}/priority/{id:-?[0-9]+}",
		m.setPriority).Methods("PUT")
	r.HandleFunc("/api/controller/{kind}/{index:[0-9]+}/threshold",
		m.setThreshold).Methods("PUT")
	r.HandleFunc("/api/stats", m.listStats).Methods("GET")
	r.Handle("/metrics", m.metrics.handler()).Methods("GET")
	r.HandleFunc("/api/resource", m.listResources).Methods("GET")
	r.HandleFunc("/api/profile", m.collectProfile).Methods("GET")

	return r
}

// StartServer starts the monitor as a web server and returns the address it
// listens on.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", err
	}

	addr := fmt.Sprintf("localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring interrupt controllers with http://%s\n",
		addr)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return addr, nil
}

// Close stops the server.
func (m *Monitor) Close() error {
	if m.server == nil {
		return nil
	}

	return m.server.Close()
}

type controllerRsp struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Index       int      `json:"index"`
	IDs         string   `json:"ids"`
	Handlers    bool     `json:"handlers"`
	Priority    string   `json:"priority"`
	Threshold   string   `json:"threshold"`
	VectorModes string   `json:"vector_modes"`
	Commands    []string `json:"commands"`
}

func describe(h irq.Handle) controllerRsp {
	caps := h.Capabilities()

	rsp := controllerRsp{
		Name:        h.Name(),
		Kind:        h.Kind().String(),
		Index:       h.Index(),
		IDs:         caps.IDs.String(),
		Handlers:    caps.Handlers,
		Priority:    caps.Priority.String(),
		Threshold:   caps.Threshold.String(),
		VectorModes: caps.VectorModes.String(),
		Commands:    []string{},
	}

	for _, c := range caps.Commands {
		rsp.Commands = append(rsp.Commands, c.String())
	}

	return rsp
}

func (m *Monitor) listControllers(w http.ResponseWriter, _ *http.Request) {
	rsp := []controllerRsp{}
	for _, h := range m.handles() {
		rsp = append(rsp, describe(h))
	}

	writeJSON(w, http.StatusOK, rsp)
}

// idPriority is one row of the priority table in the controller details.
type idPriority struct {
	ID       int
	Priority uint32
}

// controllerDetails is the state of a controller as read at one point.
type controllerDetails struct {
	Name       string
	Kind       string
	Index      int
	IDs        string
	Threshold  uint32
	Priorities []idPriority
}

func (m *Monitor) showController(w http.ResponseWriter, r *http.Request) {
	h, ok := m.findControllerOr404(w, r)
	if !ok {
		return
	}

	m.opLock.Lock()
	details := m.readDetails(h)
	m.opLock.Unlock()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(details)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

// readDetails bypasses the handle so that reads do not show up in hooks.
func (m *Monitor) readDetails(h irq.Handle) *controllerDetails {
	c := h.Controller()
	caps := c.Capabilities()

	details := &controllerDetails{
		Name:  c.Name(),
		Kind:  c.Kind().String(),
		Index: c.Index(),
		IDs:   caps.IDs.String(),
	}

	if caps.Threshold.Supported {
		details.Threshold, _ = c.Threshold()
	}

	if !caps.Priority.Supported {
		return details
	}

	for _, rng := range caps.IDs.Ranges() {
		for id := rng.Min; id <= rng.Max; id++ {
			p, err := c.Priority(irq.ID(id))
			if err == nil {
				details.Priorities = append(details.Priorities,
					idPriority{ID: int(id), Priority: p})
			}
		}
	}

	return details
}

type opRsp struct {
	Op     string `json:"op"`
	ID     int    `json:"id"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

func (m *Monitor) idOp(w http.ResponseWriter, r *http.Request) {
	h, ok := m.findControllerOr404(w, r)
	if !ok {
		return
	}

	op := mux.Vars(r)["op"]

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			opRsp{Op: op, Result: "error", Error: err.Error()})
		return
	}

	var fn func(irq.ID) error

	switch op {
	case "trigger":
		fn = h.Trigger
	case "enable":
		fn = h.Enable
	case "disable":
		fn = h.Disable
	default:
		writeJSON(w, http.StatusNotFound,
			opRsp{Op: op, ID: id, Result: "error", Error: "unknown op"})
		return
	}

	m.opLock.Lock()
	err = fn(irq.ID(id))
	m.opLock.Unlock()

	m.writeOpResult(w, op, id, err)
}

func (m *Monitor) setPriority(w http.ResponseWriter, r *http.Request) {
	h, ok := m.findControllerOr404(w, r)
	if !ok {
		return
	}

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, opRsp{
			Op: irq.OpSetPriority, Result: "error", Error: err.Error(),
		})

		return
	}

	value, err := parseValue(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, opRsp{
			Op: irq.OpSetPriority, ID: id, Result: "error", Error: err.Error(),
		})

		return
	}

	m.opLock.Lock()
	err = h.SetPriority(irq.ID(id), value)
	m.opLock.Unlock()

	m.writeOpResult(w, irq.OpSetPriority, id, err)
}

func (m *Monitor) setThreshold(w http.ResponseWriter, r *http.Request) {
	h, ok := m.findControllerOr404(w, r)
	if !ok {
		return
	}

	value, err := parseValue(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, opRsp{
			Op: irq.OpSetThreshold, ID: int(irq.NoID), Result: "error",
			Error: err.Error(),
		})

		return
	}

	m.opLock.Lock()
	err = h.SetThreshold(value)
	m.opLock.Unlock()

	m.writeOpResult(w, irq.OpSetThreshold, int(irq.NoID), err)
}

func parseID(s string) (int, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id: %w", err)
	}

	return int(id), nil
}

func parseValue(r *http.Request) (uint32, error) {
	v, err := strconv.ParseUint(r.URL.Query().Get("value"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad value: %w", err)
	}

	return uint32(v), nil
}

func (m *Monitor) writeOpResult(w http.ResponseWriter, op string, id int, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, opRsp{Op: op, ID: id, Result: "ok"})
		return
	}

	writeJSON(w, statusOf(err),
		opRsp{Op: op, ID: id, Result: "error", Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, irq.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, irq.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, irq.ErrInvalidID),
		errors.Is(err, irq.ErrInvalidMode),
		errors.Is(err, irq.ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (m *Monitor) findControllerOr404(
	w http.ResponseWriter,
	r *http.Request,
) (irq.Handle, bool) {
	vars := mux.Vars(r)

	kind, err := irq.ParseKind(vars["kind"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, opRsp{Result: "error", Error: err.Error()})
		return irq.Handle{}, false
	}

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			opRsp{Result: "error", Error: fmt.Sprintf("bad index: %v", err)})
		return irq.Handle{}, false
	}

	if m.registry == nil {
		writeJSON(w, http.StatusNotFound,
			opRsp{Result: "error", Error: irq.ErrNotFound.Error()})
		return irq.Handle{}, false
	}

	h, err := m.registry.Get(kind, index)
	if err != nil {
		writeJSON(w, http.StatusNotFound, opRsp{Result: "error", Error: err.Error()})
		return irq.Handle{}, false
	}

	return h, true
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.Stats())
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second

	if s := r.URL.Query().Get("ms"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			writeJSON(w, http.StatusBadRequest,
				opRsp{Result: "error", Error: "bad duration"})
			return
		}

		duration = time.Duration(ms) * time.Millisecond
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeJSON(w, http.StatusConflict,
			opRsp{Result: "error", Error: err.Error()})
		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
