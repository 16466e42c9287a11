package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("TIM3", TIM3.String())
	assert.Equal("USB", USB.String())
	assert.Equal("IRQ1", Line(1).String())
	assert.Equal("IRQ40", Line(40).String())

	for _, line := range []Line{1, 8, 15, 18, 30} {
		assert.True(line.Reserved(), line.String())
	}
	assert.False(I2C2.Reserved())
}

func TestTable_Lookup(t *testing.T) {
	assert := assert.New(t)

	fired := 0
	table := Table{
		Interrupt: [LINE_COUNT]Handler{
			TIM3: func() { fired++ },
		},
	}

	handler, ok := table.Lookup(TIM3)
	assert.True(ok)
	handler()
	assert.Equal(1, fired)

	handler, ok = table.Lookup(TIM6)
	assert.False(ok)
	assert.Nil(handler)

	_, ok = table.Lookup(Line(LINE_COUNT))
	assert.False(ok)

	assert.Equal([]Line{TIM3}, table.Lines())
}
