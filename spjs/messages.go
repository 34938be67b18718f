package spjs

import (
	"encoding/json"
	"errors"
)

// DataFrame is raw output read from a serial port.
type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}

// CmdStatus reports the progress of queued commands.
type CmdStatus struct {
	Cmd        string
	QueueCount int    `json:"QCnt"`
	ID         string `json:"Id"`
	Port       string `json:"P"`
}

type ErrorMessage struct {
	Error string
}

type VersionMessage struct {
	Version string
}
type HostnameMessage struct {
	Hostname string
}
type CommandsMessage struct {
	Commands []string
}

type SerialPortList struct {
	SerialPorts []SerialPort
}
type SerialPort struct {
	Name                      string
	Friendly                  string
	SerialNumber              string
	DeviceClass               string
	IsOpen                    bool
	IsPrimary                 bool
	RelatedNames              []string
	Baud                      int
	BufferAlgorithm           string
	AvailableBufferAlgorithms []string
	Ver                       float64
	USBVID                    string
	USBPID                    string
	FeedRateOverride          float64
}

// JSON is the payload of a sendjson command.
type JSON struct {
	Port string `json:"P"`
	Data []Data
}
type Data struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

func parseMessage(data []byte) (val interface{}, err error) {
	var msg map[string]json.RawMessage
	err = json.Unmarshal(data, &msg)
	if err != nil {
		return nil, err
	}

	check := func(fieldName string, v interface{}) bool {
		if msg[fieldName] == nil {
			return false
		}
		val = v
		err = json.Unmarshal(data, val)
		return true
	}
	if check("Error", &ErrorMessage{}) {
		return
	}
	if check("Hostname", &HostnameMessage{}) {
		return
	}
	if check("Commands", &CommandsMessage{}) {
		return
	}
	if check("Version", &VersionMessage{}) {
		return
	}
	if check("SerialPorts", &SerialPortList{}) {
		return
	}
	if check("Cmd", &CmdStatus{}) {
		return
	}
	if check("D", &DataFrame{}) {
		return
	}

	return nil, errors.New("unknown message: " + string(data))
}
