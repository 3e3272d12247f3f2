package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderCompass renders the device's own heading as an arrow inside a
// compass ring. headingDeg is degrees clockwise from magnetic north;
// with hasHeading false the rose is drawn without an arrow (compass
// absent or not yet reporting).
func RenderCompass(width, height int, headingDeg float64, hasHeading bool) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		isArrow[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := fcx - 2.0 // horizontal radius in columns
	ry := fcy - 2.0 // vertical radius in rows
	if rx < 3 {
		rx = 3
	}
	if ry < 2 {
		ry = 2
	}

	// Draw compass ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = ringChar(a)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Cardinal markers
	nRow := cy - int(math.Round(ry)) - 1
	sRow := cy + int(math.Round(ry)) + 1
	eCol := cx + int(math.Round(rx)) + 1
	wCol := cx - int(math.Round(rx)) - 1
	setGrid(grid, width, height, cx, nRow, 'N')
	setGrid(grid, width, height, cx, sRow, 'S')
	setGrid(grid, width, height, eCol, cy, 'E')
	setGrid(grid, width, height, wCol, cy, 'W')

	// Cross hairs (faint axes)
	for r := cy - int(ry) + 1; r < cy+int(ry); r++ {
		if r != cy && grid[r][cx] == ' ' {
			grid[r][cx] = ':'
		}
	}
	for c := cx - int(rx) + 1; c < cx+int(rx); c++ {
		if c != cx && grid[cy][c] == ' ' {
			grid[cy][c] = '.'
		}
	}

	// Center
	setGrid(grid, width, height, cx, cy, '+')

	if hasHeading {
		drawArrow(grid, isArrow, width, height, fcx, fcy, rx, ry, headingDeg*math.Pi/180)
	}

	// Render with colors
	arrowSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	axisSty := lipgloss.NewStyle().Foreground(lipgloss.Color("#003300"))
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == 'N' || ch == 'S' || ch == 'E' || ch == 'W':
				sb.WriteString(markSty.Render(string(ch)))
			case ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch == ':' || ch == '.':
				sb.WriteString(axisSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// drawArrow draws a shaft from the center toward angle with an
// arrowhead and small wings at the tip.
func drawArrow(grid [][]byte, isArrow [][]bool, width, height int, fcx, fcy, rx, ry, angle float64) {
	const arrowFrac = 0.85

	sinA := math.Sin(angle)
	cosA := math.Cos(angle)

	shaftSteps := int(math.Max(rx, ry) * arrowFrac)
	if shaftSteps < 2 {
		shaftSteps = 2
	}

	var tipCol, tipRow int
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * arrowFrac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = shaftChar(angle)
			isArrow[row][col] = true
			tipCol = col
			tipRow = row
		}
	}

	if tipCol >= 0 && tipCol < width && tipRow >= 0 && tipRow < height {
		grid[tipRow][tipCol] = arrowTip(angle)
		isArrow[tipRow][tipCol] = true
	}

	// Small wing lines at tip
	wingAngleL := angle - math.Pi*0.8
	wingAngleR := angle + math.Pi*0.8
	for w := 1; w <= 2; w++ {
		t := float64(w) * 0.4
		wlc := int(math.Round(float64(tipCol) + t*rx/float64(shaftSteps)*math.Sin(wingAngleL)*2))
		wlr := int(math.Round(float64(tipRow) - t*ry/float64(shaftSteps)*math.Cos(wingAngleL)*2))
		if wlc >= 0 && wlc < width && wlr >= 0 && wlr < height {
			grid[wlr][wlc] = shaftChar(wingAngleL)
			isArrow[wlr][wlc] = true
		}
		wrc := int(math.Round(float64(tipCol) + t*rx/float64(shaftSteps)*math.Sin(wingAngleR)*2))
		wrr := int(math.Round(float64(tipRow) - t*ry/float64(shaftSteps)*math.Cos(wingAngleR)*2))
		if wrc >= 0 && wrc < width && wrr >= 0 && wrr < height {
			grid[wrr][wrc] = shaftChar(wingAngleR)
			isArrow[wrr][wrc] = true
		}
	}
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

func ringChar(a float64) byte {
	sector := angleSector(a)
	switch sector {
	case 0, 4:
		return '-'
	case 1, 5:
		return '\\'
	case 2, 6:
		return '|'
	case 3, 7:
		return '/'
	}
	return '-'
}

// shaftChar returns the line character for a given angle direction.
func shaftChar(a float64) byte {
	switch angleSector(a) {
	case 0, 4: // N, S
		return '|'
	case 2, 6: // E, W
		return '-'
	case 1, 5: // NE, SW
		return '\\'
	case 3, 7: // SE, NW
		return '/'
	}
	return '|'
}

// arrowTip returns the arrowhead character for a given angle.
func arrowTip(a float64) byte {
	switch angleSector(a) {
	case 0: // N
		return '^'
	case 1: // NE
		return '/'
	case 2: // E
		return '>'
	case 3: // SE
		return '\\'
	case 4: // S
		return 'v'
	case 5: // SW
		return '/'
	case 6: // W
		return '<'
	case 7: // NW
		return '\\'
	}
	return '*'
}

// angleSector maps radians to one of 8 direction sectors.
func angleSector(a float64) int {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}
