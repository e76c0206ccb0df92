package model

// Matrix is a dense row-major float64 matrix. Rows are simulation paths.
type Matrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

func (m Matrix) At(i, j int) float64     { return m.Data[i*m.Cols+j] }
func (m Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Row returns a view of row i. Writes through the view modify the matrix.
func (m Matrix) Row(i int) []float64 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// Col returns a copy of column j.
func (m Matrix) Col(j int) []float64 {
	out := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = m.Data[i*m.Cols+j]
	}
	return out
}

// IntMatrix is a dense row-major int matrix used for drawn indices.
type IntMatrix struct {
	Rows int   `json:"rows"`
	Cols int   `json:"cols"`
	Data []int `json:"data"`
}

func NewIntMatrix(rows, cols int) IntMatrix {
	return IntMatrix{Rows: rows, Cols: cols, Data: make([]int, rows*cols)}
}

func (m IntMatrix) At(i, j int) int     { return m.Data[i*m.Cols+j] }
func (m IntMatrix) Set(i, j int, v int) { m.Data[i*m.Cols+j] = v }
func (m IntMatrix) Row(i int) []int     { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// SimulationResult holds the raw output of one engine run.
//   - PortfolioValues: N x (T+1), column 0 is the initial capital
//   - PeriodReturns: N x T, unscaled scenario returns
//   - SetupIndices, ScenarioIndices: N x T drawn indices
type SimulationResult struct {
	PortfolioValues Matrix
	PeriodReturns   Matrix
	SetupIndices    IntMatrix
	ScenarioIndices IntMatrix
	Config          *SimulationConfig
}

// TerminalValues returns the last column of PortfolioValues.
func (r *SimulationResult) TerminalValues() []float64 {
	return r.PortfolioValues.Col(r.PortfolioValues.Cols - 1)
}
