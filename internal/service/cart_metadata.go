package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"defiant-meals-backend/internal/dto"
)

// Stripe caps each metadata value at 500 characters. The cart rarely fits in
// one value, so it is split across cartData_0..cartData_{n-1} with the chunk
// count in cartDataChunks. 450 leaves headroom under the hard cap.
const (
	metadataChunkSize = 450
	cartDataKeyPrefix = "cartData_"
	cartDataCountKey  = "cartDataChunks"
)

// encodeCartMetadata serializes the cart and writes its chunks into md.
func encodeCartMetadata(lines []dto.CartLine, md map[string]string) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	encoded := string(raw)
	var chunks []string
	for len(encoded) > metadataChunkSize {
		chunks = append(chunks, encoded[:metadataChunkSize])
		encoded = encoded[metadataChunkSize:]
	}
	chunks = append(chunks, encoded)

	for i, chunk := range chunks {
		md[cartDataKeyPrefix+strconv.Itoa(i)] = chunk
	}
	md[cartDataCountKey] = strconv.Itoa(len(chunks))

	return nil
}

// decodeCartMetadata reassembles the cart by ascending chunk index. Map
// iteration order is irrelevant: each chunk is addressed by its key. A missing
// count, missing chunk, or unparseable payload yields an empty cart.
func decodeCartMetadata(md map[string]string) ([]dto.CartLine, error) {
	count, err := strconv.Atoi(md[cartDataCountKey])
	if err != nil || count <= 0 {
		return nil, fmt.Errorf("missing or invalid %s field", cartDataCountKey)
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		chunk, ok := md[cartDataKeyPrefix+strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("missing cart chunk %d of %d", i, count)
		}
		sb.WriteString(chunk)
	}

	var lines []dto.CartLine
	if err := json.Unmarshal([]byte(sb.String()), &lines); err != nil {
		return nil, fmt.Errorf("parse reassembled cart: %w", err)
	}

	return lines, nil
}
