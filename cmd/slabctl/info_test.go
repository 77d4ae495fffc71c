package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunInfo_ReportsLayoutForValidInputs(t *testing.T) {
	infoTypeSize = 8
	infoTypeAlign = 8
	infoBytes = 80080

	err := runInfo(nil, nil)
	assert.NoError(t, err)
}

func TestRunInfo_RejectsNonPositiveInputs(t *testing.T) {
	infoTypeSize = 0
	infoTypeAlign = 8
	infoBytes = 80080

	err := runInfo(nil, nil)
	assert.Error(t, err)
}
