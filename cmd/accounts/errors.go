package main

import "errors"

var errNATSDisconnected = errors.New("nats connection is not established")
