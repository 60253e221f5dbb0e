package network

import (
	"encoding/binary"

	"github.com/epsg-core/powerlink/pkg/boot"
)

// identityPayloadLen is the wire size of an IdentResponse's identity
// fields: four little-endian uint32s, vendor/product/revision/serial,
// matching NMT_IdentityObject_REC's sub-index order.
const identityPayloadLen = 16

func encodeIdentResponse(id boot.Identity) []byte {
	buf := make([]byte, identityPayloadLen)
	binary.LittleEndian.PutUint32(buf[0:4], id.VendorID)
	binary.LittleEndian.PutUint32(buf[4:8], id.ProductCode)
	binary.LittleEndian.PutUint32(buf[8:12], id.RevisionNo)
	binary.LittleEndian.PutUint32(buf[12:16], id.SerialNo)
	return buf
}

func decodeIdentResponse(payload []byte) (boot.Identity, bool) {
	if len(payload) < identityPayloadLen {
		return boot.Identity{}, false
	}
	return boot.Identity{
		VendorID:    binary.LittleEndian.Uint32(payload[0:4]),
		ProductCode: binary.LittleEndian.Uint32(payload[4:8]),
		RevisionNo:  binary.LittleEndian.Uint32(payload[8:12]),
		SerialNo:    binary.LittleEndian.Uint32(payload[12:16]),
	}, true
}
