package hal

// Bus is a two-wire (I²C) bus master.
type Bus interface {
	// Send writes data to the device at addr as one transaction.
	Send(addr uint8, data []byte) error
	// OpenFrame starts a transaction to register reg of the device at addr.
	// It fails with ErrBusy or ErrNack.
	OpenFrame(addr uint8, reg uint8) (Frame, error)
}

// Frame is an open bus transaction.
type Frame interface {
	// Transmit sends one byte inside the transaction.
	Transmit(value byte) error
	// Close ends the transaction with a stop condition.
	Close() error
}
