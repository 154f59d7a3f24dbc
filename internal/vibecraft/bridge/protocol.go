package bridge

// MessageType is one of the closed set of Bridge message types.
type MessageType string

const (
	MessageHello             MessageType = "hello"
	MessageServerInfo        MessageType = "server.info"
	MessageCommandExecute    MessageType = "command.execute"
	MessageScreenshotCapture MessageType = "screenshot.capture"
	MessageRegionScan        MessageType = "region.scan"
	MessageRegionHeightmap   MessageType = "region.heightmap"
	MessagePlayerContext     MessageType = "player.context"
	MessagePlayerEntities    MessageType = "player.entities"
	MessagePaletteAnalyze    MessageType = "palette.analyze"
	MessagePaletteRegion     MessageType = "palette.region"
	MessageLightAnalyze      MessageType = "light.analyze"
	MessageSymmetryCheck     MessageType = "symmetry.check"
)

// Request is the envelope shipped to the peer for every outgoing call.
type Request struct {
	ID      string      `json:"id"`
	Type    MessageType `json:"type"`
	Token   string      `json:"token,omitempty"`
	Payload interface{} `json:"payload"`
}

// Response is the envelope the peer sends back. Exactly one per Request.
type Response struct {
	ID     string      `json:"id"`
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// WorldEditMode is the configuration switch for whether large-region
// ("//...") commands may be emitted.
type WorldEditMode string

const (
	WorldEditAuto  WorldEditMode = "auto"
	WorldEditForce WorldEditMode = "force"
	WorldEditOff   WorldEditMode = "off"
)

// Capabilities is the peer's handshake-time feature map, cached by the
// Bridge for the lifetime of the connection.
type Capabilities map[string]interface{}

// WorldEditAvailable reports whether the peer's hello response flagged
// WorldEdit support, with the reason tag it supplied (if any).
func (c Capabilities) WorldEditAvailable() (available bool, reason string) {
	raw, ok := c["worldedit"]
	if !ok {
		return false, "not advertised"
	}
	switch v := raw.(type) {
	case bool:
		return v, ""
	case map[string]interface{}:
		avail, _ := v["available"].(bool)
		reason, _ = v["reason"].(string)
		return avail, reason
	default:
		return false, "unrecognized capability shape"
	}
}

// Supports reports whether the peer's capabilities list msgType among
// its supported message types.
func (c Capabilities) Supports(msgType MessageType) bool {
	raw, ok := c["supports"]
	if !ok {
		// Absent "supports" list is interpreted as "everything the closed
		// set defines", consistent with peers that predate capability
		// negotiation for individual message types.
		return true
	}
	list, ok := raw.([]interface{})
	if !ok {
		return true
	}
	for _, v := range list {
		if s, ok := v.(string); ok && MessageType(s) == msgType {
			return true
		}
	}
	return false
}
