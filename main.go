package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/lerpease/api"
	"github.com/matt-g-everett/lerpease/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Streamer   *stream.Streamer
	Controller *stream.Controller
	Api        *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(a.Controller.Commands()); err != nil {
		log.Println(err)
	}
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	a.Config = config
}

// watchConfig swaps in a freshly built sketch whenever the config file changes.
func (a *app) watchConfig(ctx context.Context, configPath string) {
	w, err := stream.NewConfigWatcher(configPath)
	if err != nil {
		log.Printf("Config reload disabled: %v", err)
		return
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case config, ok := <-w.Configs:
			if !ok {
				return
			}
			registry, err := config.Registry()
			if err != nil {
				log.Printf("Ignoring config change: %v", err)
				continue
			}
			sketch, err := stream.NewSketch(config.Sketch, registry)
			if err != nil {
				log.Printf("Ignoring config change: %v", err)
				continue
			}
			if changed := a.Config.ColdChanges(config); len(changed) > 0 {
				log.Printf("Config reloaded; restart to apply %v", changed)
			} else {
				log.Println("Config reloaded")
			}
			a.Config.Sketch = config.Sketch
			a.Config.Curves = config.Curves
			a.Api.Update(config.Sketch, registry)
			select {
			case a.Controller.Commands() <- stream.Command{Type: stream.CommandSwap, Animation: sketch}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("Failed to connect: %v", token.Error())
	}
	defer a.Client.Disconnect(250)

	if err := a.Controller.Run(ctx, a.Streamer); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	watch := flag.Bool("watch", true, "Reload the sketch when the config file changes.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config.Sketch)

	registry, err := a.Config.Registry()
	if err != nil {
		log.Fatalf("Failed to load curves: %v", err)
	}
	sketch, err := stream.NewSketch(a.Config.Sketch, registry)
	if err != nil {
		log.Fatalf("Failed to create sketch: %v", err)
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client)
	a.Controller = stream.NewController(sketch, a.Config.FrameRate, a.Config.TransitionSecs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Api = api.NewApi(a.Config.Sketch, registry, a.Config.Api.Static)
	go func() {
		if err := a.Api.Serve(a.Config.Api.Listen); err != nil {
			log.Printf("API stopped: %v", err)
		}
	}()

	if *watch {
		go a.watchConfig(ctx, *configPath)
	}

	a.run(ctx)
}
