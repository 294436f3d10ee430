package errors

import (
	"fmt"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// wireError is the document shape shared by the JSON and YAML encodings. The
// "kind" field holds the variant tag; only the payload fields the kind
// carries are populated.
type wireError struct {
	Kind    string     `json:"kind" yaml:"kind"`
	Message text       `json:"message,omitempty" yaml:"message,omitempty"`
	Char    text       `json:"char,omitempty" yaml:"char,omitempty"`
	Index   uint64     `json:"index,omitempty" yaml:"index,omitempty"`
	Code    int16      `json:"code,omitempty" yaml:"code,omitempty"`
	IO      *wireIO    `json:"io,omitempty" yaml:"io,omitempty"`
	Store   *wireStore `json:"store,omitempty" yaml:"store,omitempty"`
	TLS     *wireTLS   `json:"tls,omitempty" yaml:"tls,omitempty"`
	HTTP    *wireHTTP  `json:"http,omitempty" yaml:"http,omitempty"`
}

type wireIO struct {
	Kind   string `json:"kind" yaml:"kind"`
	Detail text   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

type wireStore struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message text   `json:"message,omitempty" yaml:"message,omitempty"`
}

type wireHTTP struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message text   `json:"message,omitempty" yaml:"message,omitempty"`
}

// wireCoded is a content type, handshake type or alert. Raw is only
// meaningful for the Unknown tag.
type wireCoded struct {
	Kind string `json:"kind" yaml:"kind"`
	Raw  uint8  `json:"raw,omitempty" yaml:"raw,omitempty"`
}

type wireTLS struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Expected []wireCoded `json:"expected,omitempty" yaml:"expected,omitempty"`
	Got      *wireCoded  `json:"got,omitempty" yaml:"got,omitempty"`
	Alert    *wireCoded  `json:"alert,omitempty" yaml:"alert,omitempty"`
	SCT      string      `json:"sct,omitempty" yaml:"sct,omitempty"`
	Message  text        `json:"message,omitempty" yaml:"message,omitempty"`
}

// text is a payload string. JSON strings cannot hold invalid UTF-8, so such
// values are written as {"bytes":"<base64>"} instead of a plain string.
type text string

type textBytes struct {
	Bytes []byte `json:"bytes"`
}

func (t text) MarshalJSON() ([]byte, error) {
	if utf8.ValidString(string(t)) {
		return json.Marshal(string(t))
	}
	return json.Marshal(textBytes{Bytes: []byte(t)})
}

func (t *text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var b textBytes
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*t = text(b.Bytes)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = text(s)
	return nil
}

func toWire(e *Error) wireError {
	w := wireError{Kind: e.kind.String()}
	switch e.kind {
	case KindIO:
		w.IO = &wireIO{Kind: e.io.Code.String(), Detail: text(e.io.Detail)}
	case KindInvalidHexCharacter:
		w.Char = text(e.char)
		w.Index = e.index
	case KindStore:
		w.Store = &wireStore{Kind: e.store.Code.String(), Message: text(e.store.Message)}
	case KindTLS:
		w.TLS = tlsToWire(e.tls)
	case KindHTTP:
		w.HTTP = &wireHTTP{Kind: e.http.Code.String(), Message: text(e.http.Message)}
	case KindJSONRPC:
		w.Code = e.code
		w.Message = text(e.message)
	default:
		if e.kind.carriesMessage() {
			w.Message = text(e.message)
		}
	}
	return w
}

func tlsToWire(t TLSError) *wireTLS {
	w := &wireTLS{Kind: t.Code.String()}
	switch t.Code {
	case TLSInappropriateMessage:
		w.Expected = make([]wireCoded, len(t.ExpectedContent))
		for i, ct := range t.ExpectedContent {
			w.Expected[i] = wireCoded{Kind: ct.Code.String(), Raw: ct.Raw}
		}
		w.Got = &wireCoded{Kind: t.Content.Code.String(), Raw: t.Content.Raw}
	case TLSInappropriateHandshakeMessage:
		w.Expected = make([]wireCoded, len(t.ExpectedHandshake))
		for i, ht := range t.ExpectedHandshake {
			w.Expected[i] = wireCoded{Kind: ht.Code.String(), Raw: ht.Raw}
		}
		w.Got = &wireCoded{Kind: t.Handshake.Code.String(), Raw: t.Handshake.Raw}
	case TLSCorruptMessagePayload:
		w.Got = &wireCoded{Kind: t.Content.Code.String(), Raw: t.Content.Raw}
	case TLSAlertReceived:
		w.Alert = &wireCoded{Kind: t.Alert.Code.String(), Raw: t.Alert.Raw}
	case TLSInvalidSCT:
		w.SCT = t.SCT.String()
	default:
		if t.Code.carriesMessage() {
			w.Message = text(t.Message)
		}
	}
	return w
}

func fromWire(w wireError) (*Error, error) {
	kind, ok := ParseKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("errors: unknown kind %q", w.Kind)
	}
	e := &Error{kind: kind}
	switch kind {
	case KindIO:
		if w.IO == nil {
			return nil, missingPayload(kind, "io")
		}
		code, ok := parseIOCode(w.IO.Kind)
		if !ok {
			return nil, fmt.Errorf("errors: unknown io kind %q", w.IO.Kind)
		}
		e.io = IOKind{Code: code}
		if code == IOUnspecified {
			e.io.Detail = string(w.IO.Detail)
		}
	case KindInvalidHexCharacter:
		e.char = string(w.Char)
		e.index = w.Index
	case KindStore:
		if w.Store == nil {
			return nil, missingPayload(kind, "store")
		}
		code, ok := parseStoreCode(w.Store.Kind)
		if !ok {
			return nil, fmt.Errorf("errors: unknown store kind %q", w.Store.Kind)
		}
		e.store = StoreError{Code: code, Message: string(w.Store.Message)}
	case KindTLS:
		if w.TLS == nil {
			return nil, missingPayload(kind, "tls")
		}
		t, err := tlsFromWire(w.TLS)
		if err != nil {
			return nil, err
		}
		e.tls = t
	case KindHTTP:
		if w.HTTP == nil {
			return nil, missingPayload(kind, "http")
		}
		code, ok := parseHTTPCode(w.HTTP.Kind)
		if !ok {
			return nil, fmt.Errorf("errors: unknown http kind %q", w.HTTP.Kind)
		}
		e.http = HTTPError{Code: code}
		if code == HTTPOther {
			e.http.Message = string(w.HTTP.Message)
		}
	case KindJSONRPC:
		e.code = w.Code
		e.message = string(w.Message)
	default:
		if kind.carriesMessage() {
			e.message = string(w.Message)
		}
	}
	return e, nil
}

func tlsFromWire(w *wireTLS) (TLSError, error) {
	code, ok := parseTLSCode(w.Kind)
	if !ok {
		return TLSError{}, fmt.Errorf("errors: unknown tls kind %q", w.Kind)
	}
	t := TLSError{Code: code}
	switch code {
	case TLSInappropriateMessage:
		if w.Got == nil {
			return TLSError{}, fmt.Errorf("errors: tls %s without got", code)
		}
		t.ExpectedContent = make([]ContentType, 0, len(w.Expected))
		for _, c := range w.Expected {
			ct, err := contentTypeFromWire(c)
			if err != nil {
				return TLSError{}, err
			}
			t.ExpectedContent = append(t.ExpectedContent, ct)
		}
		ct, err := contentTypeFromWire(*w.Got)
		if err != nil {
			return TLSError{}, err
		}
		t.Content = ct
	case TLSInappropriateHandshakeMessage:
		if w.Got == nil {
			return TLSError{}, fmt.Errorf("errors: tls %s without got", code)
		}
		t.ExpectedHandshake = make([]HandshakeType, 0, len(w.Expected))
		for _, c := range w.Expected {
			ht, err := handshakeTypeFromWire(c)
			if err != nil {
				return TLSError{}, err
			}
			t.ExpectedHandshake = append(t.ExpectedHandshake, ht)
		}
		ht, err := handshakeTypeFromWire(*w.Got)
		if err != nil {
			return TLSError{}, err
		}
		t.Handshake = ht
	case TLSCorruptMessagePayload:
		if w.Got == nil {
			return TLSError{}, fmt.Errorf("errors: tls %s without got", code)
		}
		ct, err := contentTypeFromWire(*w.Got)
		if err != nil {
			return TLSError{}, err
		}
		t.Content = ct
	case TLSAlertReceived:
		if w.Alert == nil {
			return TLSError{}, fmt.Errorf("errors: tls %s without alert", code)
		}
		v, ok := enumIndex(alertCodeNames[:], w.Alert.Kind)
		if !ok {
			return TLSError{}, fmt.Errorf("errors: unknown alert %q", w.Alert.Kind)
		}
		t.Alert = AlertDescription{Code: AlertCode(v)}
		if t.Alert.Code == AlertUnknown {
			t.Alert.Raw = w.Alert.Raw
		}
	case TLSInvalidSCT:
		v, ok := enumIndex(sctErrorNames[:], w.SCT)
		if !ok {
			return TLSError{}, fmt.Errorf("errors: unknown sct error %q", w.SCT)
		}
		t.SCT = SCTError(v)
	default:
		if code.carriesMessage() {
			t.Message = string(w.Message)
		}
	}
	return t, nil
}

func contentTypeFromWire(c wireCoded) (ContentType, error) {
	v, ok := enumIndex(contentTypeNames[:], c.Kind)
	if !ok {
		return ContentType{}, fmt.Errorf("errors: unknown content type %q", c.Kind)
	}
	t := ContentType{Code: ContentTypeCode(v)}
	if t.Code == ContentUnknown {
		t.Raw = c.Raw
	}
	return t, nil
}

func handshakeTypeFromWire(c wireCoded) (HandshakeType, error) {
	v, ok := enumIndex(handshakeTypeNames[:], c.Kind)
	if !ok {
		return HandshakeType{}, fmt.Errorf("errors: unknown handshake type %q", c.Kind)
	}
	t := HandshakeType{Code: HandshakeTypeCode(v)}
	if t.Code == HandshakeUnknown {
		t.Raw = c.Raw
	}
	return t, nil
}

func parseTLSCode(tag string) (TLSCode, bool) {
	v, ok := enumIndex(tlsCodeNames[:], tag)
	return TLSCode(v), ok
}

func missingPayload(kind Kind, field string) error {
	return fmt.Errorf("errors: %s without %q payload", kind, field)
}
