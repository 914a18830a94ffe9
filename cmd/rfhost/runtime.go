package main

import (
	log "github.com/sirupsen/logrus"

	"rfhost/controller"
	"rfhost/driver"
	"rfhost/serialport"
)

// openController opens the serial port described by cfg and starts a
// Controller over it. The caller must call the returned close function
// when done: it stops the Controller and closes the port, logging (not
// returning) any error from closing the port.
func openController() (*controller.Controller, func(), error) {
	portCfg := serialport.DefaultConfig(cfg.Device)
	if cfg.Baud != 0 {
		portCfg.Baud = cfg.Baud
	}
	if cfg.ReadTimeoutMillis != 0 {
		portCfg.ReadTimeoutMillis = cfg.ReadTimeoutMillis
	}

	port, err := serialport.Open(portCfg)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{"device": portCfg.Device, "baud": portCfg.Baud}).Info("rfhost: opened serial port")

	d := driver.NewSerialDriver(port)
	c := controller.New(d)

	closeFn := func() {
		c.Stop()
		if err := port.Close(); err != nil {
			log.WithError(err).Warn("rfhost: error closing serial port")
		}
	}

	return c, closeFn, nil
}
