package command

// CRC-32 parameters used for Load payloads.
const (
	// CRC32Polynomial is the CRC-32 polynomial, processed MSB first
	CRC32Polynomial = 0x04C11DB7

	// CRC32InitialValue is the CRC-32 initial value
	CRC32InitialValue = 0xFFFFFFFF

	// CRC32HighBitMask is the high bit mask for CRC-32 calculations
	CRC32HighBitMask = 0x80000000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

var crc32Table = makeCRC32Table()

func makeCRC32Table() (table [256]uint32) {
	for i := range table {
		crc := uint32(i) << 24
		for j := 0; j < BitsPerByte; j++ {
			if crc&CRC32HighBitMask != 0 {
				crc = (crc << 1) ^ CRC32Polynomial
			} else {
				crc = crc << 1
			}
		}
		table[i] = crc
	}
	return table
}

// CRC32 computes the CRC-32 that the boot ROM checks on Load payloads.
//
// Parameters (CRC-32/MPEG-2):
//   - Polynomial: CRC32Polynomial, not reflected
//   - Initial value: CRC32InitialValue
//   - No final XOR
func CRC32(data []byte) uint32 {
	crc := uint32(CRC32InitialValue)
	for _, b := range data {
		crc = (crc << BitsPerByte) ^ crc32Table[byte(crc>>24)^b]
	}
	return crc
}

// Checksum computes the checksum byte of a raw record.
// The first byte of record is the checksum slot itself and is skipped.
func Checksum(record []byte) byte {
	sum := byte(ChecksumSeed)
	for _, b := range record[1:] {
		sum += b
	}
	return sum
}
