package main

import (
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"sync"
	"text/template"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sboxwalk/chess-sbox/chesscrypt"
)

const (
	DefaultPort       = 8080
	DefaultSize       = 16
	DefaultIterations = 1000
)

//go:embed assets
var assets embed.FS
var static fs.FS
var templates fs.FS

func init() {
	static, _ = fs.Sub(assets, "assets/static")
	templates, _ = fs.Sub(assets, "assets/templates")
}

var (
	sboxesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chesscrypt_sboxes_generated_total",
		Help: "Number of S-boxes generated by this process.",
	})
	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chesscrypt_websocket_clients",
		Help: "Currently connected websocket clients.",
	})
)

func stdoutLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

type Client struct {
	conn        *websocket.Conn
	application *Application
}

type Application struct {
	router      *mux.Router
	templates   *template.Template
	clients     map[*Client]interface{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader

	size       int
	iterations int
	seed       int64

	boxLock sync.RWMutex
	box     *chesscrypt.SBox
}

func NewApplication(size, iterations int, seed int64) (*Application, error) {
	box, err := chesscrypt.GenerateSBox(size, iterations, chesscrypt.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	sboxesGenerated.Inc()

	templateParser := template.New("")
	templateParser.Delims("[[", "]]")
	result := Application{
		router:     mux.NewRouter(),
		templates:  template.Must(templateParser.ParseFS(templates, "*.html.gotmpl")),
		clients:    make(map[*Client]interface{}),
		size:       size,
		iterations: iterations,
		seed:       seed,
		box:        box,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	result.router.NotFoundHandler = stdoutLogger(http.HandlerFunc(notFoundHandler))
	result.router.Use(stdoutLogger)

	result.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	result.router.Handle("/metrics", promhttp.Handler())
	result.router.HandleFunc("/", result.indexHandler)
	result.router.HandleFunc("/ws", result.wsHandler)
	result.router.HandleFunc("/api/sbox", result.sboxHandler).Methods(http.MethodGet)
	result.router.HandleFunc("/api/sbox", result.regenerateHandler).Methods(http.MethodPost)
	result.router.HandleFunc("/api/substitute", result.substituteHandler).Methods(http.MethodGet)
	return &result, nil
}

func (app *Application) indexHandler(w http.ResponseWriter, r *http.Request) {
	templateVars := struct {
		Title      string
		Size       int
		Iterations int
	}{
		Title:      "ChessCrypt S-Box Explorer",
		Size:       app.size,
		Iterations: app.iterations,
	}

	err := app.templates.ExecuteTemplate(w, "index.html.gotmpl", templateVars)
	if err != nil {
		fmt.Printf("Error rendering template: %v\n", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type sboxResponse struct {
	Size       int                  `json:"size"`
	Iterations int                  `json:"iterations"`
	Stats      chesscrypt.SBoxStats `json:"stats"`
	Table      []int                `json:"table"`
}

func (app *Application) sboxHandler(w http.ResponseWriter, r *http.Request) {
	app.boxLock.RLock()
	box := app.box
	app.boxLock.RUnlock()

	stats, err := box.Stats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, sboxResponse{
		Size:       box.Size(),
		Iterations: app.iterations,
		Stats:      stats,
		Table:      box.Flatten(),
	})
}

// regenerateHandler rebuilds the S-box, streaming every swap to connected
// websocket clients as it happens, then responds with the finished table.
func (app *Application) regenerateHandler(w http.ResponseWriter, r *http.Request) {
	seed := app.seed
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	events, boxc, errc := chesscrypt.GenerateSBoxStreaming(app.size, app.iterations, chesscrypt.WithSeed(seed))
	for ev := range events {
		app.broadcastJSON(ev)
	}
	if err := <-errc; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	box := <-boxc
	sboxesGenerated.Inc()

	app.boxLock.Lock()
	app.box = box
	app.seed = seed
	app.boxLock.Unlock()

	app.sboxHandler(w, r)
}

func (app *Application) substituteHandler(w http.ResponseWriter, r *http.Request) {
	in, err := strconv.Atoi(r.URL.Query().Get("in"))
	if err != nil {
		http.Error(w, "missing or invalid 'in' parameter", http.StatusBadRequest)
		return
	}

	app.boxLock.RLock()
	box := app.box
	app.boxLock.RUnlock()

	out, err := box.Substitute(in)
	if errors.Is(err, chesscrypt.ErrOutOfRange) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Input  int `json:"input"`
		Output int `json:"output"`
	}{in, out})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Error encoding response: %v\n", err)
	}
}

func (application *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := application.upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	fmt.Printf("New websocket connection from %s\n", conn.RemoteAddr())
	client := &Client{
		conn:        conn,
		application: application,
	}
	application.clientsLock.Lock()
	application.clients[client] = nil
	application.clientsLock.Unlock()
	wsClients.Inc()
	go func() {
		for {
			// Clients only listen; reads just detect disconnects.
			if _, _, err := client.conn.ReadMessage(); err != nil {
				application.clientsLock.Lock()
				delete(application.clients, client)
				application.clientsLock.Unlock()
				wsClients.Dec()
				client.conn.Close()
				return
			}
		}
	}()
}

func (app *Application) broadcastJSON(v interface{}) {
	message, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("Error marshaling broadcast: %v\n", err)
		return
	}
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	for client := range app.clients {
		client.conn.WriteMessage(websocket.TextMessage, message)
	}
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

// oneshot generates a table, prints its stats and one example substitution.
func oneshot(size, iterations int, seed int64) error {
	box, err := chesscrypt.GenerateSBox(size, iterations, chesscrypt.WithSeed(seed))
	if err != nil {
		return err
	}

	stats, err := box.Stats()
	if err != nil {
		return err
	}
	fmt.Println("S-Box Statistics:")
	fmt.Printf("is_bijective: %t\n", stats.IsBijective)
	fmt.Printf("min_value: %d\n", stats.Min)
	fmt.Printf("max_value: %d\n", stats.Max)
	fmt.Printf("mean_value: %.4f\n", stats.Mean)
	fmt.Printf("std_dev: %.4f\n", stats.StdDev)

	input := 123
	output, err := box.Substitute(input)
	if err != nil {
		return err
	}
	fmt.Printf("\nExample substitution:\n")
	fmt.Printf("Input byte: %d\n", input)
	fmt.Printf("Output byte: %d\n", output)
	return nil
}

func main() {
	var port uint
	var size, iterations int
	var seed int64
	var runOneshot bool
	flag.UintVar(&port, "port", DefaultPort, "Port to listen on")
	flag.IntVar(&size, "size", DefaultSize, "Side length of the S-box table")
	flag.IntVar(&iterations, "iterations", DefaultIterations, "Walk iterations per generation")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	flag.BoolVar(&runOneshot, "oneshot", false, "Generate once, print stats and exit")
	flag.Parse()

	if runOneshot {
		if err := oneshot(size, iterations, seed); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if port == 0 || port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}
	app, err := NewApplication(size, iterations, seed)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Starting server on :%d\n", port)
	http.ListenAndServe(fmt.Sprintf(":%d", port), app)
}
