package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
)

type simAppliance struct {
	group    string
	name     string
	base     float64
	priority domain.Priority
}

var household = []simAppliance{
	{"Kitchen", "Oven", 9, domain.PriorityEssential},
	{"Kitchen", "Kettle", 4, domain.PriorityNonEssential},
	{"Kitchen", "Toaster", 3, domain.PriorityNonEssential},
	{"Garage", "Drill", 6, domain.PriorityUnspecified},
	{"Garage", "Compressor", 8, domain.PriorityNonEssential},
	{"Living Room", "TV", 1, domain.PriorityNonEssential},
	{"Living Room", "Heater", 8, domain.PriorityEssential},
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID(config.MQTTClientID() + "-sim")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	topic := config.MQTTReadingsTopic()
	for i := 0; i < 100; i++ {
		a := household[rand.Intn(len(household))]
		r := domain.ApplianceReading{
			Group:     a.group,
			Appliance: a.name,
			Priority:  a.priority,
			Timestamp: time.Now(),
		}
		if rand.Float64() < 0.7 {
			r.State = domain.StateOn
			r.Current = a.base * (0.8 + rand.Float64()*0.4)
		} else {
			r.State = domain.StateOff
		}
		payload, _ := json.Marshal(r)
		token := client.Publish(topic, 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
