package flipdot

import "fmt"

// Sign bus records are Intel HEX style ASCII lines:
//
//	':' length(1) address(2) type(1) data(length) checksum(1) CR LF
//
// with every field hex encoded and the checksum the two's complement of the byte sum.
const (
	msgData    = 0x00 // page data, the address field is the offset in the page
	msgDataEnd = 0x01 // end of page data
	msgRequest = 0x02 // operation request, the address field is the sign address
)

// Operations carried by msgRequest.
const (
	opReceiveConfig  = 0xa1
	opReceivePixels  = 0xa2
	opShowLoadedPage = 0xa9
	opClearPage      = 0xaa
)

// maxChunk is the maximum number of data bytes in one record.
const maxChunk = 16

func appendFrame(b []byte, address uint16, msgType byte, data []byte) []byte {
	if len(data) > 0xff {
		panic(fmt.Sprintf("flipdot: record of %d bytes", len(data)))
	}

	raw := make([]byte, 0, 5+len(data))
	raw = append(raw, byte(len(data)), byte(address>>8), byte(address), msgType)
	raw = append(raw, data...)

	var sum byte
	for _, v := range raw {
		sum += v
	}
	raw = append(raw, -sum)

	b = append(b, ':')
	b = fmt.Appendf(b, "%X", raw)
	return append(b, '\r', '\n')
}

func appendRequest(b []byte, address Address, op byte, args ...byte) []byte {
	return appendFrame(b, uint16(address), msgRequest, append([]byte{op}, args...))
}

// appendData splits data in records followed by the end of data record.
func appendData(b []byte, data []byte) []byte {
	for offset := 0; offset < len(data); offset += maxChunk {
		end := min(offset+maxChunk, len(data))
		b = appendFrame(b, uint16(offset), msgData, data[offset:end])
	}
	return appendFrame(b, 0, msgDataEnd, nil)
}
