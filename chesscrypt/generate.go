package chesscrypt

import "encoding/json"

// SwapEvent describes one walk step: the piece that moved, its cursor before
// and after, and the values sitting at those squares once the swap landed.
type SwapEvent struct {
	Iteration int
	Piece     Piece
	From      Coord
	To        Coord
	A         int // value now at From
	B         int // value now at To
}

type swapEventJSON struct {
	Iteration int    `json:"iteration"`
	Piece     string `json:"piece"`
	FromRow   int    `json:"fromRow"`
	FromCol   int    `json:"fromCol"`
	ToRow     int    `json:"toRow"`
	ToCol     int    `json:"toCol"`
	A         int    `json:"a"`
	B         int    `json:"b"`
}

// MarshalJSON implements custom JSON serialization for SwapEvent
func (ev *SwapEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(swapEventJSON{
		Iteration: ev.Iteration,
		Piece:     ev.Piece.String(),
		FromRow:   ev.From.Row,
		FromCol:   ev.From.Col,
		ToRow:     ev.To.Row,
		ToCol:     ev.To.Col,
		A:         ev.A,
		B:         ev.B,
	})
}

// GenerateSBoxStreaming runs a full generation, sending every swap through a
// channel as it happens. The finished table arrives on the second channel
// after the event channel closes; errors on the third. Invalid arguments are
// reported before any event is sent.
func GenerateSBoxStreaming(size, iterations int, opts ...EngineOption) (<-chan *SwapEvent, <-chan *SBox, <-chan error) {
	events := make(chan *SwapEvent)
	boxc := make(chan *SBox, 1)
	errc := make(chan error, 1)

	engine, err := NewEngine(size, opts...)
	if err != nil {
		errc <- err
		close(events)
		close(boxc)
		close(errc)
		return events, boxc, errc
	}
	if iterations < 0 {
		errc <- ErrNegativeIterations
		close(events)
		close(boxc)
		close(errc)
		return events, boxc, errc
	}

	go func() {
		defer close(events)
		defer close(boxc)
		defer close(errc)

		log.Info("generating s-box", "size", size, "iterations", iterations)
		err := engine.run(iterations, func(ev *SwapEvent) {
			events <- ev
		})
		if err != nil {
			errc <- err
			return
		}
		log.Info("generation complete", "size", size, "iterations", iterations)
		boxc <- engine.SBox()
	}()

	return events, boxc, errc
}

// GenerateSBox is the blocking form of GenerateSBoxStreaming.
func GenerateSBox(size, iterations int, opts ...EngineOption) (*SBox, error) {
	events, boxc, errc := GenerateSBoxStreaming(size, iterations, opts...)

	for range events {
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return <-boxc, nil
}
