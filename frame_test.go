package flipdot

import (
	"strings"
	"testing"
)

func TestAppendFrame(t *testing.T) {
	tests := []struct {
		Name string
		Got  []byte
		Want string
	}{
		{"end", appendFrame(nil, 0, msgDataEnd, nil), ":00000001FF\r\n"},
		{"receive pixels", appendRequest(nil, 3, opReceivePixels), ":01000302A258\r\n"},
		{"receive config", appendRequest(nil, 3, opReceiveConfig), ":01000302A159\r\n"},
		{"show loaded page", appendRequest(nil, 3, opShowLoadedPage), ":01000302A951\r\n"},
		{"clear on", appendRequest(nil, 3, opClearPage, 1), ":02000302AA014E\r\n"},
		{"config data", appendFrame(nil, 0, msgData, []byte{3, 90, 7}), ":03000000035A0799\r\n"},
		{"append", appendFrame([]byte("x"), 0, msgDataEnd, nil), "x:00000001FF\r\n"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if got := string(test.Got); got != test.Want {
				it.Errorf("expected %q, got %q", test.Want, got)
			}
		})
	}
}

func TestAppendFrameTooLong(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	appendFrame(nil, 0, msgData, make([]byte, 256))
}

func TestAppendData(t *testing.T) {
	got := string(appendData(nil, make([]byte, 20)))
	want := ":10000000" + strings.Repeat("00", 16) + "F0\r\n" +
		":0400100000000000EC\r\n" +
		":00000001FF\r\n"
	if got != want {
		t.Errorf("expected\n%q, got\n%q", want, got)
	}
}

func TestAppendDataEmpty(t *testing.T) {
	if got := string(appendData(nil, nil)); got != ":00000001FF\r\n" {
		t.Errorf("expected only the end record, got %q", got)
	}
}

func TestAppendDataChunks(t *testing.T) {
	for _, size := range []int{1, 15, 16, 17, 90, 224, 320} {
		records := strings.Count(string(appendData(nil, make([]byte, size))), "\r\n")
		if want := (size+maxChunk-1)/maxChunk + 1; records != want {
			t.Errorf("%d bytes: expected %d records, got %d", size, want, records)
		}
	}
}
