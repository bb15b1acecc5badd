// Package setupdemo implements the Setup Demo use case: the demo commodities GOLD and COAL
// and the traders Trader1 and Trader2 are written unconditionally, overwriting what the keys held.
package setupdemo
