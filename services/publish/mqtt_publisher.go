package publish

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"sensor-app/controller"
	"sensor-app/models"
	"sensor-app/utils"
)

const (
	publishTimeout = 2 * time.Second
	// queueSize bounds the samples waiting for the broker; newer samples
	// are dropped once it is full.
	queueSize = 256
)

// Publisher is the part of mqtt.Client the publisher needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Message is the JSON body published for every sample.
type Message struct {
	Sensor    models.SensorKind  `json:"sensor"`
	Counter   int                `json:"counter"`
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// NewMessage flattens a record into its named fields.
func NewMessage(kind models.SensorKind, rec models.Record) Message {
	p := rec.Payload()
	values := make(map[string]float64, len(p.FieldNames()))
	for _, name := range p.FieldNames() {
		if v, ok := p.Field(name); ok {
			values[name] = v
		}
	}
	return Message{Sensor: kind, Counter: rec.Seq(), Timestamp: rec.CapturedAt(), Values: values}
}

// MQTTPublisher forwards every appended sample to <prefix>/<sensor>.
type MQTTPublisher struct {
	client Publisher
	conn   mqtt.Client // set when Connect created the client
	prefix string
	qos    byte
}

func NewMQTTPublisher(client Publisher, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: prefix, qos: qos}
}

// Connect dials the broker in cfg and returns a publisher bound to it.
func Connect(cfg utils.MQTTConfig) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		utils.L().Info("mqtt: connected to %s", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		utils.L().Warn("mqtt: lost connection to %s: %v", cfg.Broker, err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, token.Error())
	}

	p := NewMQTTPublisher(client, cfg.TopicPrefix, cfg.QoS)
	p.conn = client
	return p, nil
}

// Topic returns the topic samples of kind are published on.
func (p *MQTTPublisher) Topic(kind models.SensorKind) string {
	return fmt.Sprintf("%s/%s", p.prefix, kind)
}

// Publish sends one record.
func (p *MQTTPublisher) Publish(kind models.SensorKind, rec models.Record) error {
	body, err := json.Marshal(NewMessage(kind, rec))
	if err != nil {
		return fmt.Errorf("marshal %s sample: %w", kind, err)
	}

	topic := p.Topic(kind)
	token := p.client.Publish(topic, p.qos, false, body)
	if !token.WaitTimeout(publishTimeout) {
		utils.MQTTPublishErrorsTotal.Inc()
		return fmt.Errorf("publish to %s: timed out after %v", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		utils.MQTTPublishErrorsTotal.Inc()
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

type outgoing struct {
	kind models.SensorKind
	rec  models.Record
}

// Attach subscribes the publisher to every recorder. Samples are queued and
// published from a separate goroutine; when the queue is full the sample is
// dropped and counted as a publish error. The returned func detaches the
// publisher and waits for an in-flight publish to finish.
func (p *MQTTPublisher) Attach(recs []controller.Recorder) (detach func()) {
	queue := make(chan outgoing, queueSize)
	stop := make(chan struct{})
	done := make(chan struct{})
	go p.drain(queue, stop, done)

	unsubs := make([]func(), 0, len(recs))
	for _, rec := range recs {
		kind := rec.Kind()
		unsubs = append(unsubs, rec.SubscribeRecords(func(r models.Record) {
			select {
			case queue <- outgoing{kind: kind, rec: r}:
			default:
				utils.MQTTPublishErrorsTotal.Inc()
				utils.L().Debug("mqtt: queue full, dropped %s sample %d", kind, r.Seq())
			}
		}))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, u := range unsubs {
				u()
			}
			close(stop)
			<-done
			if n := len(queue); n > 0 {
				utils.L().Warn("mqtt: detached with %d samples unpublished", n)
			}
		})
	}
}

func (p *MQTTPublisher) drain(queue <-chan outgoing, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		// stop wins over a non-empty queue
		select {
		case <-stop:
			return
		default:
		}
		select {
		case <-stop:
			return
		case o := <-queue:
			if err := p.Publish(o.kind, o.rec); err != nil {
				utils.L().Warn("mqtt: %v", err)
			}
		}
	}
}

// Close disconnects a client created by Connect.
func (p *MQTTPublisher) Close() {
	if p.conn != nil && p.conn.IsConnected() {
		p.conn.Disconnect(250)
		utils.L().Info("mqtt: disconnected")
	}
}
