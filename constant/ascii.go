package constant

// AsciiArtLogo is the application's banner shown in the root help.
const AsciiArtLogo = `
  ___  _ __   ___ _ __   __ _  ___ ___
 / _ \| '_ \ / _ \ '_ \ / _' |/ __/ _ \
| (_) | | | |  __/ |_) | (_| | (_|  __/
 \___/|_| |_|\___| .__/ \__,_|\___\___|
                 |_|`
