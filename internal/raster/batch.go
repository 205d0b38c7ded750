package raster

// Pixels is a band-major pixel block read from an image region. Data holds
// Bands×Height×Width elements of the given DType, row-major within a band.
type Pixels struct {
	Bands  int
	Width  int
	Height int
	DType  DType
	Data   []byte
}

// NewPixels allocates a zeroed pixel block.
func NewPixels(bands, width, height int, dt DType) *Pixels {
	return &Pixels{
		Bands:  bands,
		Width:  width,
		Height: height,
		DType:  dt,
		Data:   make([]byte, bands*width*height*dt.Size()),
	}
}

func (p *Pixels) offset(band, y, x int) int {
	return ((band*p.Height+y)*p.Width + x) * p.DType.Size()
}

// At returns the element at (band, y, x) as a float64.
func (p *Pixels) At(band, y, x int) float64 {
	return p.DType.at(p.Data[p.offset(band, y, x):])
}

// Set stores v at (band, y, x), truncating to the block's DType.
func (p *Pixels) Set(band, y, x int, v float64) {
	p.DType.put(p.Data[p.offset(band, y, x):], v)
}

// ChunkBatch is a 4-dimensional block of extracted chunks shaped
// (Chunks, Bands, Size, Size), chunk-major. A batch is produced fresh per
// extraction call and owned exclusively by the caller.
type ChunkBatch struct {
	Chunks int
	Bands  int
	Size   int // chunk edge length in pixels
	DType  DType
	Data   []byte
}

// NewChunkBatch allocates a zeroed batch.
func NewChunkBatch(chunks, bands, size int, dt DType) *ChunkBatch {
	return &ChunkBatch{
		Chunks: chunks,
		Bands:  bands,
		Size:   size,
		DType:  dt,
		Data:   make([]byte, chunks*bands*size*size*dt.Size()),
	}
}

func (b *ChunkBatch) chunkStride() int {
	return b.Bands * b.Size * b.Size * b.DType.Size()
}

func (b *ChunkBatch) offset(chunk, band, y, x int) int {
	return chunk*b.chunkStride() + ((band*b.Size+y)*b.Size+x)*b.DType.Size()
}

// At returns the element at (chunk, band, y, x) as a float64.
func (b *ChunkBatch) At(chunk, band, y, x int) float64 {
	return b.DType.at(b.Data[b.offset(chunk, band, y, x):])
}

// Set stores v at (chunk, band, y, x), truncating to the batch's DType.
func (b *ChunkBatch) Set(chunk, band, y, x int, v float64) {
	b.DType.put(b.Data[b.offset(chunk, band, y, x):], v)
}

// CopyChunkFrom copies chunk srcIdx of src into chunk dstIdx of b. Both
// batches must share Bands, Size and DType.
func (b *ChunkBatch) CopyChunkFrom(src *ChunkBatch, srcIdx, dstIdx int) {
	n := b.chunkStride()
	copy(b.Data[dstIdx*n:(dstIdx+1)*n], src.Data[srcIdx*n:(srcIdx+1)*n])
}
