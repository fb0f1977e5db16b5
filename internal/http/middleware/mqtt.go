package middleware

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Displays subscribe to signage/<device_id>/commands; the server publishes
// nudges there (playlist changed, content changed) so a display can poll
// immediately instead of waiting out its interval.

var (
	displayClients = make(map[string]mqtt.Client)
	ClientMutex    sync.RWMutex
	mqttClient     mqtt.Client
	brokerURL      = "tcp://0.0.0.0:1883"
)

var messagePubHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	log.Debug().Str("topic", msg.Topic()).Bytes("payload", msg.Payload()).Msg("mqtt message received")
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// SetBrokerURL allows configuration of the MQTT broker URL.
func SetBrokerURL(url string) {
	brokerURL = url
}

func CreateMQTTClient(clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetDefaultPublishHandler(messagePubHandler)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

func deviceTopic(deviceID string) string {
	return fmt.Sprintf("signage/%s/commands", deviceID)
}

// RegisterDisplayClient subscribes a connected display to its command
// topic and tracks the client for later publishes.
func RegisterDisplayClient(deviceID string) error {
	client, err := CreateMQTTClient(fmt.Sprintf("display-%s", deviceID))
	if err != nil {
		return err
	}

	topic := deviceTopic(deviceID)
	if token := client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}

	ClientMutex.Lock()
	displayClients[deviceID] = client
	ClientMutex.Unlock()

	log.Info().Str("device_id", deviceID).Msg("display connected to MQTT")
	return nil
}

// NotifyDisplay publishes a nudge to one display's command topic.
func NotifyDisplay(deviceID string, message []byte) error {
	ClientMutex.RLock()
	client, exists := displayClients[deviceID]
	ClientMutex.RUnlock()
	if !exists {
		return fmt.Errorf("display %s not connected", deviceID)
	}

	token := client.Publish(deviceTopic(deviceID), 1, false, message)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to notify display %s: %w", deviceID, token.Error())
	}
	return nil
}

// NotifyAllDisplays publishes a nudge to every connected display.
func NotifyAllDisplays(message []byte) error {
	ClientMutex.RLock()
	defer ClientMutex.RUnlock()

	var failed []string
	for deviceID, client := range displayClients {
		token := client.Publish(deviceTopic(deviceID), 1, false, message)
		token.Wait()
		if token.Error() != nil {
			failed = append(failed, deviceID)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to notify displays: %v", failed)
	}
	return nil
}

// DisconnectDisplay drops a display's MQTT session.
func DisconnectDisplay(deviceID string) {
	ClientMutex.Lock()
	defer ClientMutex.Unlock()

	if client, exists := displayClients[deviceID]; exists {
		client.Disconnect(250)
		delete(displayClients, deviceID)
		log.Info().Str("device_id", deviceID).Msg("display disconnected from MQTT")
	}
}

// ConnectedDisplays returns the device IDs with live MQTT sessions.
func ConnectedDisplays() []string {
	ClientMutex.RLock()
	defer ClientMutex.RUnlock()

	devices := make([]string, 0, len(displayClients))
	for deviceID := range displayClients {
		devices = append(devices, deviceID)
	}
	return devices
}

// CleanupMQTT disconnects all display clients and the main client.
func CleanupMQTT() {
	ClientMutex.Lock()
	defer ClientMutex.Unlock()

	for deviceID, client := range displayClients {
		client.Disconnect(250)
		log.Debug().Str("device_id", deviceID).Msg("disconnected display")
	}
	displayClients = make(map[string]mqtt.Client)

	if mqttClient != nil {
		mqttClient.Disconnect(250)
	}
}
