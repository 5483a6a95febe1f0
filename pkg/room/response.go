package room

// Response is the envelope for every message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is a chat message received from a websocket client
type PayloadIn struct {
	Text string `json:"text"`

	// Context will be passed back on the reply
	Context string `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newMessageResponse(content string, opts SendOptions) *Response {
	res := &Response{
		Key:   "message",
		Value: content,
	}

	if len(opts.Keyboard) > 0 {
		res.Data = opts
	}

	return res
}
