// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd27

import (
	"bytes"
	"time"
)

// controller is the command sink of the init/display/sleep flows below.
// Dev implements it through errorHandler; tests substitute a recorder.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
	delay(time.Duration)
}

// Booster soft start phases, shared by both modes.
var boosterConfig = []byte{0x07, 0x07, 0x17}

// Power optimization register/value pairs, sent verbatim after the booster
// configuration. Taken from the vendor initialization code.
var powerOptimizations = [][]byte{
	{0x60, 0xA5},
	{0x89, 0xA5},
	{0x90, 0x00},
	{0x93, 0x2A},
	{0xA0, 0xA5},
	{0xA1, 0x00},
	{0x73, 0x41},
}

// powerUp runs the power-on sequence common to both modes: power supply
// configuration, booster, power optimization, partial refresh off, and the
// actual power-on with its busy wait.
func powerUp(ctrl controller, powerConfig []byte) {
	ctrl.sendCommand(powerSetting)
	ctrl.sendData(powerConfig)

	ctrl.sendCommand(boosterSoftStart)
	ctrl.sendData(boosterConfig)

	for _, p := range powerOptimizations {
		ctrl.sendCommand(powerOptimization)
		ctrl.sendData(p)
	}

	ctrl.sendCommand(partialDisplayRefresh)
	ctrl.sendData([]byte{partialRefreshOff})

	ctrl.sendCommand(powerOn)
	ctrl.waitUntilIdle()
}

func initBlackWhite(ctrl controller) {
	powerUp(ctrl, []byte{0x03, 0x00, 0x2B, 0x2B, 0x09})

	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{panelSettingBW})

	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{pllBW})

	ctrl.sendCommand(vcmDCSetting)
	ctrl.sendData([]byte{vcmDCValue})

	setLUTsBlackWhite(ctrl)
}

func initGrayscale(ctrl controller) {
	powerUp(ctrl, []byte{0x03, 0x00, 0x2B, 0x2B})

	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{panelSettingGray})

	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{pllGray})

	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData([]byte{Width >> 8, Width & 0xFF, Height >> 8, Height & 0xFF})

	ctrl.sendCommand(vcmDCSetting)
	ctrl.sendData([]byte{vcmDCValue})

	ctrl.sendCommand(vcomDataInterval)
	ctrl.sendData([]byte{vcomIntervalGray})

	// Grayscale waveforms are uploaded before each refresh instead.
}

// setLUTsBlackWhite programs the black/white waveforms. The WB and BB
// registers deliberately receive each other's table; this mirrors the
// vendor code and produces the correct polarity on the panel.
func setLUTsBlackWhite(ctrl controller) {
	ctrl.sendCommand(lutVCOMRegister)
	ctrl.sendData(lutVcomDC)
	ctrl.sendCommand(lutWhiteToWhite)
	ctrl.sendData(lutWW)
	ctrl.sendCommand(lutBlackToWhite)
	ctrl.sendData(lutBW)
	ctrl.sendCommand(lutWhiteToBlack)
	ctrl.sendData(lutBB)
	ctrl.sendCommand(lutBlackToBlack)
	ctrl.sendData(lutWB)
}

func setLUTsGrayscale(ctrl controller) {
	ctrl.sendCommand(lutVCOMRegister)
	ctrl.sendData(lutVcomGray)
	ctrl.sendCommand(lutWhiteToWhite)
	ctrl.sendData(lutWWGray)
	ctrl.sendCommand(lutBlackToWhite)
	ctrl.sendData(lutBWGray)
	ctrl.sendCommand(lutWhiteToBlack)
	ctrl.sendData(lutWBGray)
	ctrl.sendCommand(lutBlackToBlack)
	ctrl.sendData(lutBBGray)
	ctrl.sendCommand(lutWhiteToWhite2)
	ctrl.sendData(lutWWGray)
}

// sendFrame streams one 1-bit panel pass row by row.
func sendFrame(ctrl controller, cmd byte, frame []byte) {
	ctrl.sendCommand(cmd)
	for y := 0; y < Height; y++ {
		ctrl.sendData(frame[y*bwBytesPerRow : (y+1)*bwBytesPerRow])
	}
}

// displayBlackWhite streams an all-white "old data" pass followed by the
// framebuffer as "new data", then triggers the refresh.
func displayBlackWhite(ctrl controller, buf []byte) {
	sendFrame(ctrl, dataStartTransmission1, bytes.Repeat([]byte{clearFill}, bwFrameLen))
	sendFrame(ctrl, dataStartTransmission2, buf)

	ctrl.sendCommand(displayRefresh)
	ctrl.waitUntilIdle()
}

// displayGrayscale transcodes the 2-bit framebuffer into the two 1-bit
// panel passes, re-uploads the grayscale waveforms and refreshes. The
// panel wants the waveforms after the pixel data on every grayscale
// refresh.
func displayGrayscale(ctrl controller, buf []byte) {
	old, cur := transcodeGrayscale(buf)
	sendFrame(ctrl, dataStartTransmission1, old)
	sendFrame(ctrl, dataStartTransmission2, cur)

	setLUTsGrayscale(ctrl)

	ctrl.sendCommand(displayRefresh)
	ctrl.delay(refreshDelay)
	ctrl.waitUntilIdle()
}

// displayPlanes streams two prepared 1-bit passes as old and new data.
func displayPlanes(ctrl controller, old, cur []byte) {
	sendFrame(ctrl, dataStartTransmission1, old)
	sendFrame(ctrl, dataStartTransmission2, cur)

	ctrl.sendCommand(displayRefresh)
	ctrl.waitUntilIdle()
}

// clearDisplay streams all-white data through both passes and refreshes.
func clearDisplay(ctrl controller) {
	frame := bytes.Repeat([]byte{clearFill}, bwFrameLen)
	sendFrame(ctrl, dataStartTransmission1, frame)
	sendFrame(ctrl, dataStartTransmission2, frame)

	ctrl.sendCommand(displayRefresh)
	ctrl.waitUntilIdle()
}

// sleepDisplay puts the panel into deep sleep. Only a hardware reset and a
// full re-initialization bring it back.
func sleepDisplay(ctrl controller) {
	ctrl.sendCommand(vcomDataInterval)
	ctrl.sendData([]byte{vcomIntervalSleep})
	ctrl.sendCommand(powerOff)
	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{deepSleepCheck})
}

// transcodeGrayscale splits a packed 2-bit grayscale framebuffer into the
// two 1-bit passes of the panel. Two input bytes (8 pixels) make one
// output byte in each pass. The old pass keeps white and light gray high,
// the new pass keeps white and dark gray high; the panel derives the four
// levels from the combination.
func transcodeGrayscale(buf []byte) (old, cur []byte) {
	n := len(buf) / 2
	old = make([]byte, n)
	cur = make([]byte, n)
	for i := 0; i < n; i++ {
		var ob, cb byte
		for _, b := range buf[2*i : 2*i+2] {
			for k := 0; k < 4; k++ {
				ob <<= 1
				cb <<= 1
				switch b & grayPixelMask {
				case grayWhiteBits:
					ob |= 1
					cb |= 1
				case grayLightBits:
					ob |= 1
				case grayDarkBits:
					cb |= 1
				}
				b <<= 2
			}
		}
		old[i] = ob
		cur[i] = cb
	}
	return old, cur
}
